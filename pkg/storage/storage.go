// Package storage provides the best-effort file deletion capability the
// core calls after a primary transaction commits. Uploads are handled by
// the surrounding layer; only reference URLs reach this service.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/boardstack/boardstack/config"
)

//go:generate mockgen -destination=../../internal/domain/mocks/mock_file_storage.go -package=mocks github.com/boardstack/boardstack/pkg/storage FileStorage

// FileStorage deletes stored files by their public reference URL.
// Implementations must never gate a caller's transaction on their outcome.
type FileStorage interface {
	DeleteByURL(ctx context.Context, fileURL string) error
}

type s3Storage struct {
	client s3iface.S3API
	bucket string
}

// NewS3Storage builds the S3-backed file storage from config.
func NewS3Storage(cfg config.StorageConfig) (FileStorage, error) {
	awsConfig := &aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &s3Storage{
		client: s3.New(sess),
		bucket: cfg.Bucket,
	}, nil
}

// NewS3StorageWithClient is used by tests to inject a mock client.
func NewS3StorageWithClient(client s3iface.S3API, bucket string) FileStorage {
	return &s3Storage{client: client, bucket: bucket}
}

func (s *s3Storage) DeleteByURL(ctx context.Context, fileURL string) error {
	key, err := keyFromURL(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// keyFromURL extracts the object key from a stored reference URL.
func keyFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file URL %q: %w", fileURL, err)
	}
	key := strings.TrimPrefix(path.Clean(parsed.Path), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("file URL %q has no object key", fileURL)
	}
	return key, nil
}

// NoopStorage is used when no storage bucket is configured. Deletes are
// silently skipped; the reference string simply becomes unreachable.
type NoopStorage struct{}

func (NoopStorage) DeleteByURL(ctx context.Context, fileURL string) error {
	return nil
}
