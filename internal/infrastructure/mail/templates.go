package mail

import (
	"fmt"
	"time"

	"github.com/matcornic/hermes/v2"
)

const timeLayout = "02 Jan 2006, 15:04 MST"

// Composer renders the site's mails.
type Composer struct {
	h *hermes.Hermes
}

func NewComposer(productName, productLink string) *Composer {
	return &Composer{h: &hermes.Hermes{
		Theme:         new(hermes.Default),
		TextDirection: hermes.TDLeftToRight,
		Product: hermes.Product{
			Name:      productName,
			Link:      productLink,
			Copyright: fmt.Sprintf("© %d %s", time.Now().Year(), productName),
		},
	}}
}

func (c *Composer) render(to, subject string, email hermes.Email) (Message, error) {
	html, err := c.h.GenerateHTML(email)
	if err != nil {
		return Message{}, fmt.Errorf("render %q: %w", subject, err)
	}
	text, err := c.h.GeneratePlainText(email)
	if err != nil {
		return Message{}, fmt.Errorf("render %q: %w", subject, err)
	}
	return Message{To: to, Subject: subject, HTML: html, Text: text}, nil
}

func (c *Composer) PasswordReset(to, name, link string, expiresIn time.Duration) (Message, error) {
	return c.render(to, "Reset your password", hermes.Email{Body: hermes.Body{
		Name: name,
		Intros: []string{
			"You have received this email because a password reset was requested for your account.",
		},
		Actions: []hermes.Action{{
			Instructions: fmt.Sprintf("Click the button below to choose a new password. The link is valid for %d minutes.", int(expiresIn.Minutes())),
			Button: hermes.Button{
				Color: "#DC4D2F",
				Text:  "Reset your password",
				Link:  link,
			},
		}},
		Outros: []string{
			"If you did not request a password reset, no further action is required.",
		},
	}})
}

func (c *Composer) AdminActivity(to, adminName, action string, at time.Time) (Message, error) {
	return c.render(to, fmt.Sprintf("Admin %s: %s", action, adminName), hermes.Email{Body: hermes.Body{
		Name: "Super Admin",
		Intros: []string{
			fmt.Sprintf("%s has %s.", adminName, pastTense(action)),
		},
		Dictionary: []hermes.Entry{
			{Key: "Admin", Value: adminName},
			{Key: "Time", Value: at.Format(timeLayout)},
		},
	}})
}

func pastTense(action string) string {
	switch action {
	case "login":
		return "logged in"
	case "logout":
		return "logged out"
	}
	return action
}
