package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

const (
	slugCounter      = "blog_slug"
	maxSlugAttempts  = 3
	commentMaxLength = 2000

	// maxPage keeps page*limit far from overflowing the repository skip.
	maxPage = 1 << 20
)

// BlogService owns posts and their embedded comments and likes.
type BlogService struct {
	posts     ports.PostRepository
	counters  ports.CounterRepository
	customers ports.UserRepository
	admins    ports.UserRepository
	files     ports.FileStore
	content   *bluemonday.Policy
	plain     *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

func NewBlogService(
	posts ports.PostRepository,
	counters ports.CounterRepository,
	customers, admins ports.UserRepository,
	files ports.FileStore,
	logger zerolog.Logger,
) *BlogService {
	return &BlogService{
		posts:     posts,
		counters:  counters,
		customers: customers,
		admins:    admins,
		files:     files,
		content:   bluemonday.UGCPolicy(),
		plain:     bluemonday.StrictPolicy(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *BlogService) Create(ctx context.Context, in ports.CreatePostInput) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", domain.NewValidationError("title", "is required")
	}

	thumb, err := storeUpload(ctx, s.files, in.Thumbnail, ImageTypes)
	if err != nil {
		return "", err
	}

	now := s.now()
	post := &domain.Post{
		Slug:        slugify(title, now),
		Title:       plainText(s.plain, title),
		Description: plainText(s.plain, in.Description),
		Content:     s.content.Sanitize(in.Content),
		Thumbnail:   thumb,
		CreatedAt:   now,
		EditedAt:    now,
		Comments:    []domain.Comment{},
		Likes:       []string{},
	}

	if err := s.insertWithUniqueSlug(ctx, post); err != nil {
		s.discardFile(ctx, thumb)
		return "", err
	}

	s.logger.Info().Str("slug", post.Slug).Msg("blog created")
	return post.Slug, nil
}

// insertWithUniqueSlug retries a colliding slug with a counter suffix.
func (s *BlogService) insertWithUniqueSlug(ctx context.Context, post *domain.Post) error {
	base := post.Slug
	for attempt := 0; ; attempt++ {
		err := s.posts.Create(ctx, post)
		if !errors.Is(err, domain.ErrSlugTaken) || attempt+1 >= maxSlugAttempts {
			return err
		}
		n, err := s.counters.NextValue(ctx, slugCounter)
		if err != nil {
			return err
		}
		post.Slug = base + "-" + strconv.FormatInt(n, 10)
	}
}

func (s *BlogService) Edit(ctx context.Context, in ports.EditPostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewValidationError("title", "is required")
	}

	current, err := s.posts.FindBySlug(ctx, in.Slug)
	if err != nil {
		return err
	}

	var thumb string
	if in.Thumbnail != nil {
		if thumb, err = storeUpload(ctx, s.files, in.Thumbnail, ImageTypes); err != nil {
			return err
		}
	}

	err = s.posts.Update(ctx, in.Slug, ports.PostUpdate{
		Title:       plainText(s.plain, title),
		Description: plainText(s.plain, in.Description),
		Content:     s.content.Sanitize(in.Content),
		Thumbnail:   thumb,
		EditedAt:    s.now(),
	})
	if err != nil {
		s.discardFile(ctx, thumb)
		return err
	}

	if thumb != "" && current.Thumbnail != "" {
		s.discardFile(ctx, current.Thumbnail)
	}
	return nil
}

// Delete removes the post. Its thumbnail stays on disk.
func (s *BlogService) Delete(ctx context.Context, slug string) error {
	return s.posts.Delete(ctx, slug)
}

func (s *BlogService) AddComment(ctx context.Context, slug, userID, text string) (*domain.Comment, error) {
	text = plainText(s.plain, text)
	if text == "" {
		return nil, domain.NewValidationError("comment", "is required")
	}
	if utf8.RuneCountInString(text) > commentMaxLength {
		return nil, domain.NewValidationError("comment", "is too long")
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.posts.AddComment(ctx, slug, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, slug, commentID string) error {
	if commentID == "" {
		return domain.NewValidationError("comment_id", "is required")
	}
	return s.posts.DeleteComment(ctx, slug, commentID)
}

func (s *BlogService) ToggleLike(ctx context.Context, slug, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthorized
	}
	return s.posts.ToggleLike(ctx, slug, userID)
}

// Get returns the post with like stats for viewerID (empty for anonymous readers)
// and its comments joined with the commenters' display names.
func (s *BlogService) Get(ctx context.Context, slug, viewerID string) (*domain.PostView, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	names, err := s.commenterNames(ctx, post.Comments)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.CommentView, 0, len(post.Comments))
	for _, c := range post.Comments {
		name, ok := names[c.UserID]
		if !ok {
			continue
		}
		comments = append(comments, domain.CommentView{
			ID:        c.ID,
			Comment:   c.Text,
			UserID:    c.UserID,
			UserName:  name,
			CreatedAt: c.CreatedAt,
		})
	}

	return &domain.PostView{
		Slug:        post.Slug,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		Thumbnail:   post.Thumbnail,
		EditedAt:    post.EditedAt,
		Likes:       len(post.Likes),
		IsUserLiked: post.LikedBy(viewerID),
		Comments:    comments,
	}, nil
}

// commenterNames resolves customers first and falls back to admins.
func (s *BlogService) commenterNames(ctx context.Context, comments []domain.Comment) (map[string]string, error) {
	names := make(map[string]string)
	if len(comments) == 0 {
		return names, nil
	}

	seen := make(map[string]struct{}, len(comments))
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}

	for _, repo := range []ports.UserRepository{s.customers, s.admins} {
		if len(ids) == 0 {
			break
		}
		users, err := repo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.DisplayName()
		}
		ids = unresolved(ids, names)
	}
	return names, nil
}

func unresolved(ids []string, names map[string]string) []string {
	out := ids[:0]
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func (s *BlogService) List(ctx context.Context, page int) (*ports.PostPage, error) {
	if page < 1 {
		return nil, domain.NewValidationError("page", "must be a positive integer")
	}
	items, total, err := s.posts.List(ctx, min(page, maxPage), domain.BlogPageSize)
	if err != nil {
		return nil, err
	}
	return &ports.PostPage{Items: items, TotalCount: total, Page: page}, nil
}

func (s *BlogService) ListAll(ctx context.Context) ([]domain.PostSummary, error) {
	return s.posts.ListAll(ctx)
}

func (s *BlogService) discardFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.files.Remove(ctx, path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("remove stored file")
	}
}
