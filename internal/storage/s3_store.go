package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// putObjectAPI is the part of *s3.Client the store needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements ImageStore on AWS S3.
type s3Store struct {
	client        putObjectAPI
	bucket        string
	prefix        string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewS3Store creates a new S3-backed image store.
// Without publicBaseURL the virtual-hosted bucket URL is used.
func NewS3Store(ctx context.Context, bucket, region, prefix, publicBaseURL string, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return newS3Store(s3.NewFromConfig(cfg), bucket, prefix, publicBaseURL, logger), nil
}

func newS3Store(client putObjectAPI, bucket, prefix, publicBaseURL string, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client:        client,
		bucket:        bucket,
		prefix:        prefix,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (s *s3Store) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	objectKey := s.prefix + key

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, objectKey, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", objectKey).
		Int("bytes", len(data)).
		Msg("image stored in S3")

	return s.publicBaseURL + "/" + objectKey, nil
}

// fallbackStore tries S3 first, then falls back to the local file system.
type fallbackStore struct {
	s3Store   ImageStore
	fileStore ImageStore
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that prefers S3. If s3Store is nil only the file store is used.
func NewFallbackStore(s3Store, fileStore ImageStore, s3Enabled bool, logger zerolog.Logger) ImageStore {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

func (s *fallbackStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if !s.s3Enabled || s.s3Store == nil {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local file system")
		return s.fileStore.Save(ctx, key, body, contentType)
	}

	// The body is replayed on fallback.
	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	url, err := s.s3Store.Save(ctx, key, bytes.NewReader(data), contentType)
	if err == nil {
		return url, nil
	}

	s.logger.Warn().
		Err(err).
		Str("key", key).
		Msg("failed to store in S3, falling back to local file system")

	return s.fileStore.Save(ctx, key, bytes.NewReader(data), contentType)
}
