package ports

import (
	"context"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

type GalleryRepository interface {
	Create(ctx context.Context, img *domain.GalleryImage) error
	// List filters by type when category is non-empty.
	List(ctx context.Context, category string, page, limit int) ([]domain.GalleryImage, int64, error)
	// Delete removes the record and returns it so the caller can drop the file.
	Delete(ctx context.Context, id string) (*domain.GalleryImage, error)
}

type GalleryPage struct {
	Images     []domain.GalleryImage
	TotalCount int64
}

type GalleryService interface {
	Upload(ctx context.Context, image *Upload, imageType, alt string) (*domain.GalleryImage, error)
	List(ctx context.Context, category string, page int) (*GalleryPage, error)
	Delete(ctx context.Context, id string) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	// ListAll returns every message, newest first.
	ListAll(ctx context.Context) ([]domain.ContactMessage, error)
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}
