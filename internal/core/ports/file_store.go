package ports

import (
	"context"
	"io"
)

// ReadSeekCloser is what multipart.FileHeader.Open hands back.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// FileStore persists uploaded files and returns their public path.
type FileStore interface {
	Save(ctx context.Context, filename string, r io.Reader, allowed []string) (string, error)
	Remove(ctx context.Context, publicPath string) error
}
