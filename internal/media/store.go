package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/daycare-scheduler/internal/config"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

// ObjectStore stores public objects and returns their URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes to any S3-compatible bucket.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

func NewS3Store(cfg *config.Config) *S3Store {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
		BaseEndpoint: endpoint(cfg.S3Endpoint),
		UsePathStyle: cfg.S3Endpoint != "",
	})

	base := strings.TrimRight(cfg.S3PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	return &S3Store{client: client, bucket: cfg.S3Bucket, baseURL: base}
}

func endpoint(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Disabled is the ObjectStore used when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", httperr.New(httperr.KindUnavailable, "photo storage is not configured").
		WithCode("storage_unavailable")
}
