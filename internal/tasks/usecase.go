package tasks

import (
	"context"

	"github.com/google/uuid"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/pkg/utils"
)

type UseCase interface {
	SubmitTask(ctx context.Context, input *models.TaskSubmitInput) (*models.Task, error)
	UploadSource(ctx context.Context, input *models.UploadInput) (string, error)

	GetTaskStatus(ctx context.Context, taskID string) (*models.Task, error)
	GetTaskResult(ctx context.Context, taskID string) (*models.TaskResult, error)

	GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)
}
