package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// ResetTokenTTL bounds how long a mailed reset link stays usable.
const ResetTokenTTL = 10 * time.Minute

// policy is what differs between the customer and admin flavours of the auth flow.
type policy struct {
	repo       ports.UserRepository
	sessionTTL func(*domain.User) time.Duration
}

// AuthService implements registration, login, password reset and admin management.
type AuthService struct {
	customers    ports.UserRepository
	admins       ports.UserRepository
	tokens       ports.TokenService
	notifier     ports.Notifier
	resetBaseURL string
	logger       zerolog.Logger
	now          func() time.Time
}

func NewAuthService(
	customers, admins ports.UserRepository,
	tokens ports.TokenService,
	notifier ports.Notifier,
	publicURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		customers:    customers,
		admins:       admins,
		tokens:       tokens,
		notifier:     notifier,
		resetBaseURL: strings.TrimRight(publicURL, "/") + "/reset-password/",
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) policy(kind domain.UserKind) (policy, error) {
	switch kind {
	case domain.KindCustomer:
		return policy{
			repo:       s.customers,
			sessionTTL: func(*domain.User) time.Duration { return CustomerSessionTTL },
		}, nil
	case domain.KindAdmin:
		return policy{
			repo: s.admins,
			sessionTTL: func(u *domain.User) time.Duration {
				if u.IsSuperAdmin {
					return SuperAdminSessionTTL
				}
				return AdminSessionTTL
			},
		}, nil
	}
	return policy{}, domain.ErrInvalidPayload
}

func (s *AuthService) Register(ctx context.Context, kind domain.UserKind, in ports.RegisterInput) (*ports.AuthResult, error) {
	p, err := s.policy(kind)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidPayload
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.NewValidationError("confirm_password", "must match password")
	}

	if _, err := p.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Kind:         kind,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if kind == domain.KindAdmin {
		user.Name = strings.TrimSpace(in.Name)
		user.IsSuperAdmin = in.IsSuperAdmin
		user.Status = domain.StatusActive
	} else {
		user.FirstName = strings.TrimSpace(in.FirstName)
		user.LastName = strings.TrimSpace(in.LastName)
		user.Phone = strings.TrimSpace(in.Phone)
	}

	created, err := p.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueSession(p, created)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, kind domain.UserKind, email, password string) (*ports.AuthResult, error) {
	p, err := s.policy(kind)
	if err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	user, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindAdmin && user.Status == domain.StatusDeleted {
		return nil, domain.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueSession(p, user)
	if err != nil {
		return nil, err
	}

	if kind == domain.KindAdmin {
		if err := s.notifier.AdminLogin(ctx, user.DisplayName(), s.now()); err != nil {
			s.logger.Warn().Err(err).Str("admin_id", user.ID).Msg("admin login notification not sent")
		}
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

// ForgetPassword mails a single-use reset link to a customer. Only one link may be
// outstanding at a time.
func (s *AuthService) ForgetPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidPayload
	}

	user, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	now := s.now()
	if user.HasPendingReset(now) {
		return domain.ErrResetAlreadySent
	}

	nonce, err := newResetNonce()
	if err != nil {
		return err
	}
	if err := s.customers.SetResetToken(ctx, email, hashResetToken(nonce), now.Add(ResetTokenTTL)); err != nil {
		return err
	}

	if err := s.notifier.PasswordReset(ctx, email, user.DisplayName(), s.resetBaseURL+nonce, ResetTokenTTL); err != nil {
		if clearErr := s.customers.SetResetToken(ctx, email, "", time.Time{}); clearErr != nil {
			s.logger.Error().Err(clearErr).Str("user_id", user.ID).Msg("clear reset token after mail failure")
		}
		return fmt.Errorf("send reset mail: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset link issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	if password == "" {
		return domain.ErrInvalidPayload
	}
	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	user, err := s.customers.FindByResetTokenHash(ctx, hashResetToken(token))
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if !user.HasPendingReset(s.now()) || !resetHashMatches(user.ResetTokenHash, token) {
		return domain.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.customers.UpdatePassword(ctx, user.Email, string(hash))
}

// AdminLogout only notifies; tokens stay valid until they expire.
func (s *AuthService) AdminLogout(ctx context.Context, adminID string) error {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		s.logger.Warn().Err(err).Str("admin_id", adminID).Msg("logout for unknown admin")
		return nil
	}
	if err := s.notifier.AdminLogout(ctx, admin.DisplayName(), s.now()); err != nil {
		s.logger.Warn().Err(err).Str("admin_id", adminID).Msg("admin logout notification not sent")
	}
	return nil
}

func (s *AuthService) ToggleAdminRole(ctx context.Context, adminID string) (*domain.User, error) {
	if adminID == "" {
		return nil, domain.ErrInvalidPayload
	}
	return s.admins.ToggleSuperAdmin(ctx, adminID)
}

func (s *AuthService) DeactivateAdmin(ctx context.Context, adminID string) error {
	if adminID == "" {
		return domain.ErrInvalidPayload
	}
	return s.admins.SetStatus(ctx, adminID, domain.StatusDeleted)
}

func (s *AuthService) issueSession(p policy, user *domain.User) (string, error) {
	return s.tokens.Issue(domain.Claims{Subject: user.ID, Role: user.Role()}, p.sessionTTL(user))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
