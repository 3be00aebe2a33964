package tasks

import (
	"context"

	"github.com/google/uuid"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/pkg/utils"
)

// Repository archives task and video records in Postgres. Redis stays
// the source of truth while a task is live; the archive serves listing
// and survives status-store expiry.
type Repository interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, taskID string) (*models.Task, error)

	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)
}
