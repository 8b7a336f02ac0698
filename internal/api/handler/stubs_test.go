package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/middleware"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// --- service stubs ---

type stubAuthService struct {
	registerFn   func(ctx context.Context, kind domain.UserKind, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn      func(ctx context.Context, kind domain.UserKind, email, password string) (*ports.AuthResult, error)
	forgetFn     func(ctx context.Context, email string) error
	resetFn      func(ctx context.Context, token, password, confirm string) error
	logoutFn     func(ctx context.Context, id string) error
	toggleFn     func(ctx context.Context, id string) (*domain.User, error)
	deactivateFn func(ctx context.Context, id string) error
}

func (s *stubAuthService) Register(ctx context.Context, kind domain.UserKind, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, kind, in)
}

func (s *stubAuthService) Login(ctx context.Context, kind domain.UserKind, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, kind, email, password)
}

func (s *stubAuthService) ForgetPassword(ctx context.Context, email string) error {
	return s.forgetFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	return s.resetFn(ctx, token, password, confirm)
}

func (s *stubAuthService) AdminLogout(ctx context.Context, id string) error {
	return s.logoutFn(ctx, id)
}

func (s *stubAuthService) ToggleAdminRole(ctx context.Context, id string) (*domain.User, error) {
	return s.toggleFn(ctx, id)
}

func (s *stubAuthService) DeactivateAdmin(ctx context.Context, id string) error {
	return s.deactivateFn(ctx, id)
}

type stubBlogService struct {
	createFn        func(ctx context.Context, in ports.CreatePostInput) (string, error)
	editFn          func(ctx context.Context, in ports.EditPostInput) error
	deleteFn        func(ctx context.Context, slug string) error
	addCommentFn    func(ctx context.Context, slug, userID, text string) (*domain.Comment, error)
	deleteCommentFn func(ctx context.Context, slug, commentID string) error
	toggleLikeFn    func(ctx context.Context, slug, userID string) (bool, error)
	getFn           func(ctx context.Context, slug, viewerID string) (*domain.PostView, error)
	listFn          func(ctx context.Context, page int) (*ports.PostPage, error)
	listAllFn       func(ctx context.Context) ([]domain.PostSummary, error)
}

func (s *stubBlogService) Create(ctx context.Context, in ports.CreatePostInput) (string, error) {
	return s.createFn(ctx, in)
}

func (s *stubBlogService) Edit(ctx context.Context, in ports.EditPostInput) error {
	return s.editFn(ctx, in)
}

func (s *stubBlogService) Delete(ctx context.Context, slug string) error {
	return s.deleteFn(ctx, slug)
}

func (s *stubBlogService) AddComment(ctx context.Context, slug, userID, text string) (*domain.Comment, error) {
	return s.addCommentFn(ctx, slug, userID, text)
}

func (s *stubBlogService) DeleteComment(ctx context.Context, slug, commentID string) error {
	return s.deleteCommentFn(ctx, slug, commentID)
}

func (s *stubBlogService) ToggleLike(ctx context.Context, slug, userID string) (bool, error) {
	return s.toggleLikeFn(ctx, slug, userID)
}

func (s *stubBlogService) Get(ctx context.Context, slug, viewerID string) (*domain.PostView, error) {
	return s.getFn(ctx, slug, viewerID)
}

func (s *stubBlogService) List(ctx context.Context, page int) (*ports.PostPage, error) {
	return s.listFn(ctx, page)
}

func (s *stubBlogService) ListAll(ctx context.Context) ([]domain.PostSummary, error) {
	return s.listAllFn(ctx)
}

type stubGalleryService struct {
	uploadFn func(ctx context.Context, image *ports.Upload, imageType, alt string) (*domain.GalleryImage, error)
	listFn   func(ctx context.Context, category string, page int) (*ports.GalleryPage, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubGalleryService) Upload(ctx context.Context, image *ports.Upload, imageType, alt string) (*domain.GalleryImage, error) {
	return s.uploadFn(ctx, image, imageType, alt)
}

func (s *stubGalleryService) List(ctx context.Context, category string, page int) (*ports.GalleryPage, error) {
	return s.listFn(ctx, category, page)
}

func (s *stubGalleryService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubContactService struct {
	submitFn func(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error)
	listFn   func(ctx context.Context) ([]domain.ContactMessage, error)
}

func (s *stubContactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	return s.submitFn(ctx, in)
}

func (s *stubContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.listFn(ctx)
}

// --- request helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartContext(t *testing.T, e *echo.Echo, method, target string, fields map[string]string, file *formFile) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(file.content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, subject, role string) {
	c.Set(middleware.SubjectKey, subject)
	c.Set(middleware.RoleKey, role)
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("invalid data: %v", err)
		}
	}
	return env
}

func readUpload(t *testing.T, up *ports.Upload) string {
	t.Helper()
	f, err := up.Open()
	if err != nil {
		t.Fatalf("open upload: %v", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	return string(b)
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
