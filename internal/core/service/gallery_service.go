package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type GalleryService struct {
	repo   ports.GalleryRepository
	files  ports.FileStore
	plain  *bluemonday.Policy
	logger zerolog.Logger
	now    func() time.Time
}

func NewGalleryService(repo ports.GalleryRepository, files ports.FileStore, logger zerolog.Logger) *GalleryService {
	return &GalleryService{
		repo:   repo,
		files:  files,
		plain:  bluemonday.StrictPolicy(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *GalleryService) Upload(ctx context.Context, image *ports.Upload, imageType, alt string) (*domain.GalleryImage, error) {
	imageType = strings.TrimSpace(imageType)
	if imageType == "" {
		return nil, domain.NewValidationError("type", "is required")
	}

	path, err := storeUpload(ctx, s.files, image, ImageTypes)
	if err != nil {
		return nil, err
	}

	img := &domain.GalleryImage{
		ID:        uuid.NewString(),
		Image:     path,
		Type:      plainText(s.plain, imageType),
		Alt:       plainText(s.plain, alt),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		if rmErr := s.files.Remove(ctx, path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("remove stored file")
		}
		return nil, err
	}
	return img, nil
}

func (s *GalleryService) List(ctx context.Context, category string, page int) (*ports.GalleryPage, error) {
	page = min(max(page, 1), maxPage)
	images, total, err := s.repo.List(ctx, strings.TrimSpace(category), page, domain.GalleryPageSize)
	if err != nil {
		return nil, err
	}
	return &ports.GalleryPage{Images: images, TotalCount: total}, nil
}

// Delete removes the record and, best effort, the stored file.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Remove(ctx, img.Image); err != nil {
		s.logger.Warn().Err(err).Str("path", img.Image).Msg("remove stored file")
	}
	return nil
}
