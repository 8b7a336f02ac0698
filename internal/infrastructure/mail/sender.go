// Package mail renders notification mails with hermes and delivers them through
// Mailgun. Outside production messages are logged instead of sent.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"
)

const sendTimeout = 10 * time.Second

// Message is one rendered mail ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailgunSender delivers through the Mailgun HTTP API.
type MailgunSender struct {
	mg   mailgun.Mailgun
	from string
	log  zerolog.Logger
}

func NewMailgunSender(domain, apiKey, from string, log zerolog.Logger) *MailgunSender {
	mg := mailgun.NewMailgun(domain, apiKey)
	mg.SetAPIBase(mailgun.APIBaseEU)
	return &MailgunSender{mg: mg, from: from, log: log}
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	m := s.mg.NewMessage(s.from, msg.Subject, msg.Text, msg.To)
	m.SetHtml(msg.HTML)

	_, id, err := s.mg.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("mailgun send %q: %w", msg.Subject, err)
	}
	s.log.Debug().Str("mailgun_id", id).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

// LogSender only records that a mail would have been sent.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("skipping mail outside production")
	return nil
}
