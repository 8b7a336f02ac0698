package ports

import (
	"context"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// RegisterInput carries the registration form for either user kind.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	IsSuperAdmin    bool
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, kind domain.UserKind, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, kind domain.UserKind, email, password string) (*AuthResult, error)
	ForgetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) error
	AdminLogout(ctx context.Context, adminID string) error
	ToggleAdminRole(ctx context.Context, adminID string) (*domain.User, error)
	DeactivateAdmin(ctx context.Context, adminID string) error
}
