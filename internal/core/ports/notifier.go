package ports

import (
	"context"
	"time"
)

// Notifier sends the transactional and informational mails of the site.
type Notifier interface {
	PasswordReset(ctx context.Context, email, name, link string, expiresIn time.Duration) error
	AdminLogin(ctx context.Context, adminName string, at time.Time) error
	AdminLogout(ctx context.Context, adminName string, at time.Time) error
}
