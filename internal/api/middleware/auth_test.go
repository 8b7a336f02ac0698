package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/service"
)

func issue(t *testing.T, tokens *service.TokenService, subject, role string, ttl time.Duration) string {
	t.Helper()
	signed, err := tokens.Issue(domain.Claims{Subject: subject, Role: role}, ttl)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret")
	signed := issue(t, tokens, "admin-1", domain.RoleAdmin, time.Hour)

	for _, header := range []string{"Bearer " + signed, "bearer " + signed, signed} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		handler := Auth(tokens)(func(c echo.Context) error {
			called = true
			if c.Get(SubjectKey) != "admin-1" {
				t.Fatalf("subject not set")
			}
			if c.Get(RoleKey) != domain.RoleAdmin {
				t.Fatalf("role not set")
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called {
			t.Fatalf("next not called for header %q", header)
		}
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokens := service.NewTokenService("secret")
	other := service.NewTokenService("other-secret")

	cases := map[string]string{
		"missing":      "",
		"garbage":      "Bearer not-a-token",
		"wrong secret": "Bearer " + issue(t, other, "u1", "", time.Hour),
		"expired":      "Bearer " + issue(t, tokens, "u1", "", -time.Minute),
	}

	for name, header := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(tokens)(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := service.NewTokenService("secret")
	signed := issue(t, tokens, "cust-1", "", time.Hour)

	cases := []struct {
		header  string
		subject any
	}{
		{"", nil},
		{"Bearer broken", nil},
		{"Bearer " + signed, "cust-1"},
	}

	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		handler := OptionalAuth(tokens)(func(c echo.Context) error {
			called = true
			if c.Get(SubjectKey) != tc.subject {
				t.Fatalf("header %q: expected subject %v, got %v", tc.header, tc.subject, c.Get(SubjectKey))
			}
			return nil
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called {
			t.Fatalf("next not called")
		}
	}
}
