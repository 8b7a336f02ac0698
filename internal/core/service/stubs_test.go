package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		for _, u := range r.users {
			if u.ID == id {
				out = append(out, cloneUser(u))
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByResetTokenHash(_ context.Context, hash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if hash != "" && u.ResetTokenHash == hash {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetExpiresAt = time.Time{}
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, email, hash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetTokenHash = hash
	u.ResetExpiresAt = expiresAt
	return nil
}

func (r *stubUserRepo) ToggleSuperAdmin(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.IsSuperAdmin = !u.IsSuperAdmin
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Status = status
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type sentReset struct {
	email string
	link  string
}

type stubNotifier struct {
	mu      sync.Mutex
	resets  []sentReset
	logins  []string
	logouts []string
	err     error
}

func (n *stubNotifier) PasswordReset(_ context.Context, email, _, link string, _ time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.resets = append(n.resets, sentReset{email: email, link: link})
	return nil
}

func (n *stubNotifier) AdminLogin(_ context.Context, name string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logins = append(n.logins, name)
	return n.err
}

func (n *stubNotifier) AdminLogout(_ context.Context, name string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logouts = append(n.logouts, name)
	return n.err
}

func (n *stubNotifier) lastReset() sentReset {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resets) == 0 {
		return sentReset{}
	}
	return n.resets[len(n.resets)-1]
}

type stubPostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
	taken map[string]bool
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post), taken: make(map[string]bool)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Comments = append([]domain.Comment(nil), p.Comments...)
	clone.Likes = append([]string(nil), p.Likes...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.posts[post.Slug]; exists || r.taken[post.Slug] {
		return domain.ErrSlugTaken
	}
	r.posts[post.Slug] = clonePost(post)
	return nil
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[slug]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Update(_ context.Context, slug string, u ports.PostUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[slug]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Title, p.Description, p.Content, p.EditedAt = u.Title, u.Description, u.Content, u.EditedAt
	if u.Thumbnail != "" {
		p.Thumbnail = u.Thumbnail
	}
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[slug]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, slug)
	return nil
}

func (r *stubPostRepo) sorted() []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, domain.PostSummary{Slug: p.Slug, Title: p.Title, Thumbnail: p.Thumbnail, EditedAt: p.EditedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EditedAt.After(out[j].EditedAt) })
	return out
}

func (r *stubPostRepo) List(_ context.Context, page, limit int) ([]domain.PostSummary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	start := (page - 1) * limit
	if start >= len(all) {
		return []domain.PostSummary{}, int64(len(all)), nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubPostRepo) ListAll(_ context.Context) ([]domain.PostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *stubPostRepo) AddComment(_ context.Context, slug string, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[slug]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

func (r *stubPostRepo) DeleteComment(_ context.Context, slug, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[slug]
	if !ok {
		return domain.ErrPostNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *stubPostRepo) ToggleLike(_ context.Context, slug, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[slug]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false, nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return true, nil
}

type stubCounters struct {
	mu     sync.Mutex
	values map[string]int64
}

func (c *stubCounters) NextValue(_ context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]int64)
	}
	c.values[name]++
	return c.values[name], nil
}

type stubFileStore struct {
	mu      sync.Mutex
	saved   []string
	removed []string
	n       int
}

func (s *stubFileStore) Save(_ context.Context, filename string, r io.Reader, allowed []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	ok := false
	for _, a := range allowed {
		if a == ext {
			ok = true
		}
	}
	if !ok {
		return "", domain.ErrInvalidFileType
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.n++
	path := fmt.Sprintf("images/2026-01-01/%d.%s", s.n, ext)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubFileStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return nil
}

type nopCloser struct {
	*strings.Reader
}

func (nopCloser) Close() error { return nil }

func fakeUpload(name string) *ports.Upload {
	return &ports.Upload{
		Filename: name,
		Size:     4,
		Open: func() (ports.ReadSeekCloser, error) {
			return nopCloser{strings.NewReader("data")}, nil
		},
	}
}

type stubGalleryRepo struct {
	mu     sync.Mutex
	images []domain.GalleryImage
	err    error
}

func (r *stubGalleryRepo) Create(_ context.Context, img *domain.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.images = append(r.images, *img)
	return nil
}

func (r *stubGalleryRepo) List(_ context.Context, category string, page, limit int) ([]domain.GalleryImage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.GalleryImage
	for _, img := range r.images {
		if category == "" || img.Type == category {
			matched = append(matched, img)
		}
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []domain.GalleryImage{}, int64(len(matched)), nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *stubGalleryRepo) Delete(_ context.Context, id string) (*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, img := range r.images {
		if img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return &img, nil
		}
	}
	return nil, domain.ErrImageNotFound
}

type stubContactRepo struct {
	messages []domain.ContactMessage
}

func (r *stubContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubContactRepo) ListAll(_ context.Context) ([]domain.ContactMessage, error) {
	out := make([]domain.ContactMessage, 0, len(r.messages))
	for i := len(r.messages) - 1; i >= 0; i-- {
		out = append(out, r.messages[i])
	}
	return out, nil
}
