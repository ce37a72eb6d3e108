package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/rubayet2027/KrishiLink-Client/internal/config"
)

// IS3Storage defines the interface for crop image storage operations.
type IS3Storage interface {
	GeneratePresignedPutURL(ctx context.Context, ownerEmail, filename, contentType string) (string, string, error)
	ObjectURL(key string) string
}

// s3Storage implements IS3Storage.
type s3Storage struct {
	cfg           *config.Config
	s3Client      *s3.Client
	presignClient *s3.PresignClient
}

// NewS3Storage creates a new S3 storage service.
func NewS3Storage(cfg *config.Config) (IS3Storage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		// Use static credentials from config for simplicity
		// For production, prefer IAM roles or other secure credential methods
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg)
	presignClient := s3.NewPresignClient(s3Client)

	return &s3Storage{
		cfg:           cfg,
		s3Client:      s3Client,
		presignClient: presignClient,
	}, nil
}

// sanitizeFilename keeps the base name only and replaces anything outside a
// safe character set, so user input cannot shape the object key.
func sanitizeFilename(filename string) string {
	base := path.Base(filename)
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// GeneratePresignedPutURL creates a pre-signed URL the browser uploads a
// crop image to directly. It returns the URL and the generated object key.
func (s *s3Storage) GeneratePresignedPutURL(ctx context.Context, ownerEmail, filename, contentType string) (string, string, error) {
	objectKey := fmt.Sprintf("crops/%s/%s_%s", ownerEmail, uuid.NewString(), sanitizeFilename(filename))

	// Pre-signed URL lifetime; the upload must start within this window.
	expiration := 15 * time.Minute

	presignParams := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := s.presignClient.PresignPutObject(ctx, presignParams, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned PUT URL for key %s: %w", objectKey, err)
	}

	return presignedReq.URL, objectKey, nil
}

// ObjectURL returns the public URL a stored image is served from. These are
// the image references embedded in crop listings.
func (s *s3Storage) ObjectURL(key string) string {
	return strings.TrimRight(s.cfg.ImageBaseS3URL, "/") + "/" + key
}
