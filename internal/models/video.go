package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Video is the ancillary record tracking a task's source material from
// raw reference to durable storage. Only the worker mutates it after
// submission.
type Video struct {
	VideoID    uuid.UUID `json:"video_id" db:"video_id" redis:"video_id" validate:"omitempty"`
	TaskID     string    `json:"task_id" db:"task_id" redis:"task_id" validate:"omitempty"`
	FileName   string    `json:"file_name" db:"file_name" redis:"file_name" validate:"omitempty,lte=255"`
	SourceURL  string    `json:"source_url,omitempty" db:"source_url" redis:"source_url" validate:"omitempty"`
	S3Key      string    `json:"s3_key,omitempty" db:"s3_key" redis:"s3_key" validate:"omitempty,lte=255"`
	S3Bucket   string    `json:"s3_bucket,omitempty" db:"s3_bucket" redis:"s3_bucket" validate:"omitempty,lte=255"`
	StorageURI string    `json:"storage_uri,omitempty" db:"storage_uri" redis:"storage_uri" validate:"omitempty"`
	FileSize   int64     `json:"file_size,omitempty" db:"file_size" redis:"file_size" validate:"omitempty"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" redis:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" redis:"updated_at" validate:"omitempty"`
}

type VideoList struct {
	Videos     []*Video `json:"videos"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}

type UploadInput struct {
	File       io.Reader `json:"file,omitempty"`
	Name       string    `json:"name,required"`
	MimeType   string    `json:"mime_type,required"`
	Size       int64     `json:"size,required"`
	Key        string    `json:"key,required"`
	BucketName string    `json:"bucket_name,required"`
}
