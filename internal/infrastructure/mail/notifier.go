package mail

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Enqueuer accepts a message for asynchronous delivery.
type Enqueuer interface {
	Enqueue(msg Message) error
}

// Notifier renders mails and hands them to the delivery queue. It never waits
// for the provider.
type Notifier struct {
	composer    *Composer
	queue       Enqueuer
	adminNotify string
	log         zerolog.Logger
}

func NewNotifier(composer *Composer, queue Enqueuer, adminNotify string, log zerolog.Logger) *Notifier {
	return &Notifier{composer: composer, queue: queue, adminNotify: adminNotify, log: log}
}

func (n *Notifier) PasswordReset(_ context.Context, email, name, link string, expiresIn time.Duration) error {
	msg, err := n.composer.PasswordReset(email, name, link, expiresIn)
	if err != nil {
		return err
	}
	return n.queue.Enqueue(msg)
}

func (n *Notifier) AdminLogin(_ context.Context, adminName string, at time.Time) error {
	return n.adminActivity(adminName, "login", at)
}

func (n *Notifier) AdminLogout(_ context.Context, adminName string, at time.Time) error {
	return n.adminActivity(adminName, "logout", at)
}

func (n *Notifier) adminActivity(adminName, action string, at time.Time) error {
	if n.adminNotify == "" {
		n.log.Debug().Str("action", action).Msg("no admin notification address configured")
		return nil
	}
	msg, err := n.composer.AdminActivity(n.adminNotify, adminName, action, at)
	if err != nil {
		return err
	}
	return n.queue.Enqueue(msg)
}
