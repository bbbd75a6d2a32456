// Package storage persists uploaded images and hands back their public URL.
package storage

import (
	"context"
	"io"

	"github.com/menu-interativo/back-end/internal/model"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ImageStore defines where uploaded images end up.
type ImageStore interface {
	// Save writes body under key and returns the URL clients should use to fetch it.
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Extension returns the file extension for an accepted content type.
func Extension(contentType string) (string, bool) {
	ext, ok := extensions[contentType]
	return ext, ok
}

// CheckImage rejects unsupported content types and oversized files.
func CheckImage(contentType string, size int64) error {
	if _, ok := extensions[contentType]; !ok {
		return model.ErrInvalidImage
	}
	if size <= 0 || size > MaxImageSize {
		return model.ErrInvalidImage
	}
	return nil
}
