// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/ports"
)

// uploader is the part of manager.Uploader the archive uses.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// bucketAPI is the part of the S3 client used to prepare the bucket.
type bucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3Archive stores generated reports in an S3 bucket.
type S3Archive struct {
	client   bucketAPI
	uploader uploader
	bucket   string
	region   string
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.ReportArchive = (*S3Archive)(nil)

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
	CreateBucket    bool
}

// NewS3Archive creates an archive for cfg.Bucket. With CreateBucket set a
// missing bucket is created, which is what local MinIO setups want.
func NewS3Archive(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("report bucket is required")
	}

	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	archive := newS3Archive(client, manager.NewUploader(client), cfg, logger)

	if cfg.CreateBucket {
		if err := archive.ensureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket: %w", err)
		}
	}

	logger.Info("report archive initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return archive, nil
}

func newS3Archive(client bucketAPI, up uploader, cfg *S3Config, logger *slog.Logger) *S3Archive {
	return &S3Archive{
		client:   client,
		uploader: up,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		now:      time.Now,
		logger:   logger.With(slog.String("storage", "s3")),
	}
}

// buildAWSConfig builds AWS configuration
func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

// ensureBucket ensures the bucket exists
func (s *S3Archive) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, createErr := s.client.CreateBucket(ctx, input); createErr != nil {
		return fmt.Errorf("bucket %s does not exist and could not be created: %w", s.bucket, createErr)
	}

	s.logger.InfoContext(ctx, "created S3 bucket", slog.String("bucket", s.bucket))
	return nil
}

// Upload writes body under key and returns the object location.
func (s *S3Archive) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploaded-at": s.now().UTC().Format(time.RFC3339),
			"upload-id":   uuid.New().String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.InfoContext(ctx, "report archived",
		slog.String("key", key),
		slog.String("location", result.Location))

	return result.Location, nil
}
