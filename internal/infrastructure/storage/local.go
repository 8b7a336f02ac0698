// Package storage keeps uploaded files on local disk, partitioned by upload date.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

// LocalStore writes files to <dir>/<YYYY-MM-DD>/<millis><uuid>.<ext> and exposes
// them as <urlPrefix>/<YYYY-MM-DD>/<file>.
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.Trim(urlPrefix, "/"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Dir is the root served as static content.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader, allowed []string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !contains(allowed, ext) {
		return "", domain.ErrInvalidFileType
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	day := now.Format(dateLayout)
	if err := os.MkdirAll(filepath.Join(s.dir, day), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := strconv.FormatInt(now.UnixMilli(), 10) + uuid.NewString() + "." + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, day, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	return path.Join(s.urlPrefix, day, name), nil
}

// Remove deletes a file previously returned by Save. Missing files are not an error.
func (s *LocalStore) Remove(_ context.Context, publicPath string) error {
	rel := strings.TrimPrefix(path.Clean("/"+publicPath), "/")
	if s.urlPrefix != "" {
		var ok bool
		if rel, ok = strings.CutPrefix(rel, s.urlPrefix+"/"); !ok {
			return fmt.Errorf("remove upload: %q is outside %s", publicPath, s.urlPrefix)
		}
	}
	if rel == "" {
		return fmt.Errorf("remove upload: empty path")
	}

	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
