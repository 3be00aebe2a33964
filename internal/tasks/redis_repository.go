package tasks

import (
	"context"
	"time"

	"github.com/miresse/video-accessibility/internal/models"
)

// RedisRepository is the durable FIFO queue plus the status store that
// is the sole source of truth for task state.
type RedisRepository interface {
	EnqueueTask(ctx context.Context, task *models.Task) error
	// DequeueTask blocks up to timeout; returns nil when nothing arrived.
	DequeueTask(ctx context.Context, timeout time.Duration) (*models.Task, error)
	// ClaimTask takes the single-writer lock for taskID. False means
	// another worker already holds it.
	ClaimTask(ctx context.Context, taskID string) (bool, error)
	ReleaseClaim(ctx context.Context, taskID string) error

	SaveTask(ctx context.Context, task *models.Task) error
	SetStep(ctx context.Context, taskID string, step models.TaskStep) error
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
}
