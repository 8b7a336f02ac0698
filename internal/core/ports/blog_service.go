package ports

import (
	"context"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (ReadSeekCloser, error)
}

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title       string
	Description string
	Content     string
	Thumbnail   *Upload
}

// EditPostInput carries the replacement fields; Thumbnail is optional.
type EditPostInput struct {
	Slug        string
	Title       string
	Description string
	Content     string
	Thumbnail   *Upload
}

// PostPage is one page of the public listing.
type PostPage struct {
	Items      []domain.PostSummary
	TotalCount int64
	Page       int
}

type BlogService interface {
	Create(ctx context.Context, in CreatePostInput) (string, error)
	Edit(ctx context.Context, in EditPostInput) error
	Delete(ctx context.Context, slug string) error
	AddComment(ctx context.Context, slug, userID, text string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, slug, commentID string) error
	ToggleLike(ctx context.Context, slug, userID string) (bool, error)
	Get(ctx context.Context, slug, viewerID string) (*domain.PostView, error)
	List(ctx context.Context, page int) (*PostPage, error)
	ListAll(ctx context.Context) ([]domain.PostSummary, error)
}
