package ports

import (
	"time"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// TokenService issues and verifies signed bearer tokens.
// Verify folds malformed, badly signed and expired tokens into domain.ErrInvalidToken.
type TokenService interface {
	Issue(claims domain.Claims, ttl time.Duration) (string, error)
	Verify(token string) (*domain.Claims, error)
}
