package tasks

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/miresse/video-accessibility/internal/models"
)

type AWSRepository interface {
	// PutObject stores the object and returns its stable s3:// URI.
	PutObject(ctx context.Context, input models.UploadInput) (string, error)
	GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error)
	GetPresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}
