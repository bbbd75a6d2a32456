package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileStore implements ImageStore on the local file system.
type fileStore struct {
	dir           string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewFileStore creates a store writing under dir. Files are served by the router at /uploads/.
func NewFileStore(dir, publicBaseURL string, logger zerolog.Logger) ImageStore {
	return &fileStore{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.With().Str("component", "file-image-store").Logger(),
	}
}

func (s *fileStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	path := filepath.Join(s.dir, clean)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create upload directory")
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", path, err)
	}

	n, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close image file: %w", closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove partial image file")
		}
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", path, err)
	}

	s.logger.Info().
		Str("path", path).
		Str("content_type", contentType).
		Int64("bytes", n).
		Msg("image stored on local file system")

	return s.publicBaseURL + "/uploads/" + filepath.ToSlash(clean), nil
}
