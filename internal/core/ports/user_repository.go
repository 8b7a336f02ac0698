package ports

import (
	"context"
	"time"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// UserRepository is the credential store for one kind of user.
// Each method touches a single document.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*domain.User, error)
	// UpdatePassword stores a new hash and clears any reset token in the same write.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	// SetResetToken replaces the reset slot; an empty hash clears it.
	SetResetToken(ctx context.Context, email, hash string, expiresAt time.Time) error
	ToggleSuperAdmin(ctx context.Context, id string) (*domain.User, error)
	SetStatus(ctx context.Context, id, status string) error
}
