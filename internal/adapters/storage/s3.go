package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"staffline/internal/domain"
)

// S3Config holds configuration for the S3 document archive.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible stores
}

// StoreConfig holds configuration for creating a file store.
type StoreConfig struct {
	Provider string
	S3       S3Config
}

// NewFileStore creates a file store from config. Provider "s3" archives to an
// S3 bucket; "noop" or unknown uses a no-op store that only logs.
func NewFileStore(config StoreConfig, logger *slog.Logger) (domain.FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case "s3":
		s3cfg := config.S3
		if s3cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 file store requires a bucket")
		}
		awsCfg := aws.Config{
			Region: s3cfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					s3cfg.AccessKeyID,
					s3cfg.SecretAccessKey,
					"",
				),
			),
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if s3cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(s3cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
		return &s3Store{client: client, bucket: s3cfg.Bucket, logger: logger}, nil
	case "noop":
		return &noopStore{logger: logger}, nil
	default:
		logger.Warn("unknown file store provider, using noop", "provider", config.Provider)
		return &noopStore{logger: logger}, nil
	}
}

type s3Store struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

func (s *s3Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive document to s3: %w", err)
	}
	s.logger.Info("document archived", "bucket", s.bucket, "key", key, "bytes", len(data))
	return nil
}

type noopStore struct {
	logger *slog.Logger
}

func (n *noopStore) Put(_ context.Context, key, contentType string, data []byte) error {
	n.logger.Info("document would be archived (noop)", "key", key, "content_type", contentType, "bytes", len(data))
	return nil
}
