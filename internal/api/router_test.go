package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/api/handler"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
	"github.com/pickmymaid/content-api/internal/core/service"
)

// fakeAuth logs in three fixed accounts and treats taken@example.com as registered.
type fakeAuth struct {
	tokens *service.TokenService
}

var fakeAccounts = map[string]*domain.User{
	"cust@example.com":  {ID: "cust-1", Kind: domain.KindCustomer, FirstName: "Cara"},
	"admin@example.com": {ID: "admin-1", Kind: domain.KindAdmin, Name: "Ada"},
	"root@example.com":  {ID: "root-1", Kind: domain.KindAdmin, Name: "Root", IsSuperAdmin: true},
}

func (f *fakeAuth) session(u *domain.User) (*ports.AuthResult, error) {
	tok, err := f.tokens.Issue(domain.Claims{Subject: u.ID, Role: u.Role()}, time.Hour)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: tok, User: u}, nil
}

func (f *fakeAuth) Register(_ context.Context, kind domain.UserKind, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Email == "taken@example.com" {
		return nil, domain.ErrUserExists
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.NewValidationError("confirm_password", "must match password")
	}
	return f.session(&domain.User{ID: "new-1", Kind: kind, Email: in.Email, Name: in.Name, FirstName: in.FirstName})
}

func (f *fakeAuth) Login(_ context.Context, kind domain.UserKind, email, password string) (*ports.AuthResult, error) {
	u, ok := fakeAccounts[email]
	if !ok || u.Kind != kind {
		return nil, domain.ErrUserNotFound
	}
	if password != "secret1" {
		return nil, domain.ErrInvalidCredentials
	}
	return f.session(u)
}

func (f *fakeAuth) ForgetPassword(context.Context, string) error { return nil }

func (f *fakeAuth) ResetPassword(_ context.Context, token, _, _ string) error {
	if token != "fresh" {
		return domain.ErrInvalidToken
	}
	return nil
}

func (f *fakeAuth) AdminLogout(context.Context, string) error { return nil }

func (f *fakeAuth) ToggleAdminRole(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Kind: domain.KindAdmin, IsSuperAdmin: true}, nil
}

func (f *fakeAuth) DeactivateAdmin(context.Context, string) error { return nil }

type fakeBlog struct {
	likes map[string]bool
}

func (b *fakeBlog) Create(context.Context, ports.CreatePostInput) (string, error) {
	return "", domain.ErrMissingFile
}

func (b *fakeBlog) Edit(context.Context, ports.EditPostInput) error { return nil }

func (b *fakeBlog) Delete(context.Context, string) error { return nil }

func (b *fakeBlog) DeleteComment(context.Context, string, string) error { return nil }

func (b *fakeBlog) AddComment(_ context.Context, slug, userID, text string) (*domain.Comment, error) {
	if slug != "hello-1" {
		return nil, domain.ErrPostNotFound
	}
	return &domain.Comment{ID: "c1", UserID: userID, Text: text}, nil
}

func (b *fakeBlog) ToggleLike(_ context.Context, slug, userID string) (bool, error) {
	if slug != "hello-1" {
		return false, domain.ErrPostNotFound
	}
	b.likes[userID] = !b.likes[userID]
	return b.likes[userID], nil
}

func (b *fakeBlog) Get(_ context.Context, slug, viewerID string) (*domain.PostView, error) {
	if slug != "hello-1" {
		return nil, domain.ErrPostNotFound
	}
	return &domain.PostView{Slug: slug, IsUserLiked: b.likes[viewerID]}, nil
}

func (b *fakeBlog) List(_ context.Context, page int) (*ports.PostPage, error) {
	if page < 1 {
		return nil, domain.NewValidationError("page", "must be at least 1")
	}
	return &ports.PostPage{Items: []domain.PostSummary{{Slug: "hello-1"}}, TotalCount: 1, Page: page}, nil
}

func (b *fakeBlog) ListAll(context.Context) ([]domain.PostSummary, error) {
	return []domain.PostSummary{{Slug: "hello-1"}}, nil
}

type fakeGallery struct{}

func (fakeGallery) Upload(context.Context, *ports.Upload, string, string) (*domain.GalleryImage, error) {
	return nil, domain.ErrMissingFile
}

func (fakeGallery) List(context.Context, string, int) (*ports.GalleryPage, error) {
	return &ports.GalleryPage{}, nil
}

func (fakeGallery) Delete(context.Context, string) error { return domain.ErrImageNotFound }

type fakeContact struct{}

func (fakeContact) Submit(_ context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	return &domain.ContactMessage{ID: "m1", Name: in.Name, Message: in.Message}, nil
}

func (fakeContact) List(context.Context) ([]domain.ContactMessage, error) {
	return nil, errors.New("mongo: connection reset")
}

func newTestServer(t *testing.T) *httpexpect.Expect {
	t.Helper()
	tokens := service.NewTokenService("router-test-secret")
	e := NewRouter(Services{
		Auth:    &fakeAuth{tokens: tokens},
		Tokens:  tokens,
		Blog:    &fakeBlog{likes: map[string]bool{}},
		Gallery: fakeGallery{},
		Contact: fakeContact{},
	}, Options{
		Logger:    zerolog.Nop(),
		BodyLimit: "1M",
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": func(context.Context) error { return nil },
		},
		Registry: prometheus.NewRegistry(),
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return httpexpect.Default(t, server.URL)
}

func login(expect *httpexpect.Expect, path, email string) string {
	return expect.POST(path).
		WithJSON(map[string]string{"email": email, "password": "secret1"}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		Value("token").String().Raw()
}

func TestRouter_GuardRejectsBeforeHandler(t *testing.T) {
	expect := newTestServer(t)

	// missing token
	expect.PUT("/api/v1/blog/like").WithJSON(map[string]string{"slug": "hello-1"}).
		Expect().Status(http.StatusUnauthorized).
		JSON().Object().Value("status").IsEqual("UNAUTHORIZED")

	// malformed token
	expect.PUT("/api/v1/blog/like").WithHeader("Authorization", "Bearer nope").
		WithJSON(map[string]string{"slug": "hello-1"}).
		Expect().Status(http.StatusUnauthorized)

	// valid customer token, admin-only route
	customer := login(expect, "/api/v1/auth/login", "cust@example.com")
	expect.GET("/api/v1/blog/blogs-admin").WithHeader("Authorization", "Bearer "+customer).
		Expect().Status(http.StatusUnauthorized)

	// admin token, super-admin-only route
	admin := login(expect, "/api/v1/admin/login", "admin@example.com")
	expect.POST("/api/v1/admin/register").WithHeader("Authorization", "Bearer "+admin).
		WithJSON(map[string]any{"name": "New Admin", "email": "n@example.com", "password": "secret1", "confirm_password": "secret1"}).
		Expect().Status(http.StatusUnauthorized)
	expect.GET("/api/v1/blog/blogs-admin").WithHeader("Authorization", "Bearer "+admin).
		Expect().Status(http.StatusOK)

	root := login(expect, "/api/v1/admin/login", "root@example.com")
	expect.POST("/api/v1/admin/register").WithHeader("Authorization", root).
		WithJSON(map[string]any{"name": "New Admin", "email": "n@example.com", "password": "secret1", "confirm_password": "secret1"}).
		Expect().Status(http.StatusCreated).
		JSON().Object().Value("status").IsEqual("CREATED")
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	expect := newTestServer(t)

	obj := expect.POST("/api/v1/auth/register").
		WithJSON(map[string]string{"first_name": "Taken", "email": "taken@example.com", "password": "secret1", "confirm_password": "secret1"}).
		Expect().Status(http.StatusConflict).
		JSON().Object()
	obj.Value("status").IsEqual("CONFLICT")
	obj.Value("statusCode").IsEqual(http.StatusConflict)
	obj.Value("message").IsEqual("User already exist. Please login")

	expect.POST("/api/v1/auth/register").
		WithJSON(map[string]string{"first_name": "Mismatch", "email": "m@example.com", "password": "secret1", "confirm_password": "secret2"}).
		Expect().Status(http.StatusBadRequest).
		JSON().Object().Value("field").IsEqual("confirm_password")

	expect.POST("/api/v1/auth/login").
		WithJSON(map[string]string{"email": "ghost@example.com", "password": "secret1"}).
		Expect().Status(http.StatusNotFound).
		JSON().Object().Value("message").IsEqual("User does not exist")

	expect.POST("/api/v1/auth/login").
		WithJSON(map[string]string{"email": "cust@example.com", "password": "wrong12"}).
		Expect().Status(http.StatusUnauthorized)

	expect.POST("/api/v1/auth/reset-password/used").
		WithJSON(map[string]string{"password": "secret1", "confirm_password": "secret1"}).
		Expect().Status(http.StatusUnauthorized)

	expect.GET("/api/v1/does-not-exist").
		Expect().Status(http.StatusNotFound).
		JSON().Object().Value("status").IsEqual("NOT_FOUND")

	admin := login(expect, "/api/v1/admin/login", "admin@example.com")
	obj = expect.GET("/api/v1/contact").WithHeader("Authorization", "Bearer "+admin).
		Expect().Status(http.StatusInternalServerError).
		JSON().Object()
	obj.Value("message").IsEqual("Internal server error!")
}

func TestRouter_LikeAndReadBack(t *testing.T) {
	expect := newTestServer(t)
	token := login(expect, "/api/v1/auth/login", "cust@example.com")

	expect.GET("/api/v1/blog/id/hello-1").
		Expect().Status(http.StatusOK).
		JSON().Path("$.data.blog.isUserLiked").IsEqual(false)

	expect.PUT("/api/v1/blog/like").WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]string{"slug": "hello-1"}).
		Expect().Status(http.StatusOK).
		JSON().Path("$.data.liked").IsEqual(true)

	expect.GET("/api/v1/blog/id/hello-1").WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK).
		JSON().Path("$.data.blog.isUserLiked").IsEqual(true)

	// an invalid token on the optional route reads as anonymous
	expect.GET("/api/v1/blog/id/hello-1").WithHeader("Authorization", "Bearer broken").
		Expect().Status(http.StatusOK).
		JSON().Path("$.data.blog.isUserLiked").IsEqual(false)

	expect.PUT("/api/v1/blog/comment").WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]string{"blog_id": "missing", "comment": "hi"}).
		Expect().Status(http.StatusNotFound).
		JSON().Object().Value("message").IsEqual("Blog not found")
}

func TestRouter_PublicRoutes(t *testing.T) {
	expect := newTestServer(t)

	expect.GET("/api/v1/blog/page/1").
		Expect().Status(http.StatusOK).
		JSON().Path("$.data.total_counts").IsEqual(1)

	expect.GET("/api/v1/blog/page/0").
		Expect().Status(http.StatusBadRequest).
		JSON().Object().Value("field").IsEqual("page")

	expect.GET("/api/v1/gallery").WithQuery("page", 1).
		Expect().Status(http.StatusOK)

	expect.POST("/api/v1/contact").
		WithJSON(map[string]string{"name": "Sam", "message": "hello"}).
		Expect().Status(http.StatusCreated)

	expect.GET("/health").Expect().Status(http.StatusOK)
	expect.GET("/health/ready").Expect().Status(http.StatusOK).
		JSON().Object().Value("status").IsEqual("ok")
	expect.GET("/metrics").Expect().Status(http.StatusOK)
}
