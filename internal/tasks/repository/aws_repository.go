package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/pkg/errors"
)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient) tasks.AWSRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, input models.UploadInput) (string, error) {
	_, err := a.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &input.BucketName,
			Key:           &input.Key,
			ContentType:   &input.MimeType,
			ContentLength: &input.Size,
			Body:          input.File,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.PutObject")
	}
	return fmt.Sprintf("s3://%s/%s", input.BucketName, input.Key), nil
}

func (a *awsRepository) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	res, err := a.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "awsRepository.GetObject")
	}
	return res, nil
}

func (a *awsRepository) GetPresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(expiry),
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.GetPresignedURL")
	}
	return req.URL, nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Wrap(err, "awsRepository.RemoveObject")
	}
	return nil
}
