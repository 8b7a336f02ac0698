package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/middleware"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// subject returns the authenticated user ID set by the Auth middleware.
// An empty subject means the middleware did not run; treat it as 401.
func subject(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.SubjectKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// viewer is subject for routes behind OptionalAuth: "" for anonymous callers.
func viewer(c echo.Context) string {
	id, _ := c.Get(middleware.SubjectKey).(string)
	return id
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.ErrInvalidPayload
	}
	return c.Validate(req)
}

// formUpload wraps the multipart file in field as a ports.Upload.
// A missing file yields nil, nil so callers decide whether it is required.
func formUpload(c echo.Context, field string) (*ports.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, domain.ErrInvalidPayload
	}
	return uploadFromHeader(fh), nil
}

func uploadFromHeader(fh *multipart.FileHeader) *ports.Upload {
	return &ports.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (ports.ReadSeekCloser, error) {
			return fh.Open()
		},
	}
}
