package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type ContactService struct {
	repo  ports.ContactRepository
	plain *bluemonday.Policy
	now   func() time.Time
}

func NewContactService(repo ports.ContactRepository) *ContactService {
	return &ContactService{
		repo:  repo,
		plain: bluemonday.StrictPolicy(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      s.clean(in.Name),
		Email:     normalizeEmail(in.Email),
		Phone:     s.clean(in.Phone),
		Message:   s.clean(in.Message),
		CreatedAt: s.now(),
	}
	if msg.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if msg.Message == "" {
		return nil, domain.NewValidationError("message", "is required")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.ListAll(ctx)
}

func (s *ContactService) clean(v string) string {
	return plainText(s.plain, v)
}
