// services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore uploads binary blobs and returns a stable retrieval URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// S3Storage stores uploads in an S3 bucket.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
	timeout time.Duration
}

// NewS3Storage wires the storage service to a bucket. A nil client yields a
// storage that reports every upload as transient.
func NewS3Storage(client *s3.Client) *S3Storage {
	bucket := os.Getenv("S3_BUCKET")
	baseURL := strings.TrimRight(os.Getenv("S3_BASE_URL"), "/")

	if baseURL == "" && bucket != "" {
		region := os.Getenv("S3_REGION")
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		timeout: 30 * time.Second,
	}
}

// Upload puts the object under the given key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", ErrTransient("object storage unavailable", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ErrTransient("failed to upload object", err)
	}

	return s.baseURL + "/" + key, nil
}
