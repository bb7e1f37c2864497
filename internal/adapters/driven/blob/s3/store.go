// Package s3 stores source blobs in an S3 bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Config holds S3 connection settings. When AccessKey and SecretKey
// are empty the default credential chain is used.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string

	// Prefix is prepended to every object key.
	Prefix string
}

// Store uploads blobs to an S3 bucket, keyed by filename under the
// configured prefix.
type Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
}

// NewStore connects to S3 using the given settings.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 blob store: bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 blob store: region is required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger.Debug("connected to s3 bucket %s in %s", cfg.Bucket, cfg.Region)
	return &Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
	}, nil
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Upload stores the file's content and returns its bucket URL.
// Seekable content is rewound first, so the content may already have
// been read by a parser.
func (s *Store) Upload(ctx context.Context, file *domain.File) (*driven.BlobRef, error) {
	if seeker, ok := file.Content.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind content: %w", err)
		}
	}

	key := s.key(file.Filename())

	uploadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload failed: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return &driven.BlobRef{URL: url}, nil
}

// Remove deletes the stored blob for the given source path.
func (s *Store) Remove(ctx context.Context, path string) error {
	f := domain.File{Name: path}
	delCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.DeleteObject(delCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(f.Filename())),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

// RemoveAll deletes every object under the configured prefix.
func (s *Store) RemoveAll(ctx context.Context) error {
	var token *string
	for {
		listCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		page, err := s.client.ListObjectsV2(listCtx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.prefix),
			ContinuationToken: token,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("s3 list failed: %w", err)
		}
		if len(page.Contents) == 0 {
			return nil
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		delCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		_, err = s.client.DeleteObjects(delCtx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects},
		})
		cancel()
		if err != nil {
			return fmt.Errorf("s3 bulk delete failed: %w", err)
		}

		if page.NextContinuationToken == nil {
			return nil
		}
		token = page.NextContinuationToken
	}
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
