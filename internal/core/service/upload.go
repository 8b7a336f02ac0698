package service

import (
	"context"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// ImageTypes are the accepted extensions for thumbnails and gallery images.
var ImageTypes = []string{"jpg", "jpeg", "png"}

func storeUpload(ctx context.Context, store ports.FileStore, up *ports.Upload, allowed []string) (string, error) {
	if up == nil || up.Open == nil {
		return "", domain.ErrMissingFile
	}
	f, err := up.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Save(ctx, up.Filename, f, allowed)
}
