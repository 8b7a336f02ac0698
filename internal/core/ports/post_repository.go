package ports

import (
	"context"
	"time"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// PostUpdate holds the editable fields of a post. Empty Thumbnail keeps the current one.
type PostUpdate struct {
	Title       string
	Description string
	Content     string
	Thumbnail   string
	EditedAt    time.Time
}

// PostRepository persists blog posts with their embedded comments and likes.
type PostRepository interface {
	// Create fails with domain.ErrSlugTaken when the slug is already used.
	Create(ctx context.Context, post *domain.Post) error
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Update(ctx context.Context, slug string, update PostUpdate) error
	Delete(ctx context.Context, slug string) error
	// List returns one page sorted by edited_at descending, plus the total count.
	List(ctx context.Context, page, limit int) ([]domain.PostSummary, int64, error)
	ListAll(ctx context.Context) ([]domain.PostSummary, error)
	AddComment(ctx context.Context, slug string, comment domain.Comment) error
	DeleteComment(ctx context.Context, slug, commentID string) error
	// ToggleLike flips userID's membership in the liker set and reports the new state.
	ToggleLike(ctx context.Context, slug, userID string) (bool, error)
}

// CounterRepository hands out named, monotonically increasing sequence values.
type CounterRepository interface {
	NextValue(ctx context.Context, name string) (int64, error)
}
