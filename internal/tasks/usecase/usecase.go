package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/logger"
	"github.com/miresse/video-accessibility/pkg/utils"
	"github.com/pkg/errors"
)

const resultURLExpiry = 60 * time.Minute

type taskUC struct {
	cfg       *config.Config
	taskRepo  tasks.Repository
	redisRepo tasks.RedisRepository
	awsRepo   tasks.AWSRepository
	logger    logger.Logger
}

func NewTaskUseCase(
	cfg *config.Config,
	taskRepo tasks.Repository,
	redisRepo tasks.RedisRepository,
	awsRepo tasks.AWSRepository,
	log logger.Logger,
) tasks.UseCase {
	return &taskUC{
		cfg:       cfg,
		taskRepo:  taskRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		logger:    log,
	}
}

// SubmitTask validates the request, records a PENDING task and enqueues
// it. It returns as soon as the job is queued; processing is observed
// via GetTaskStatus.
func (u *taskUC) SubmitTask(ctx context.Context, input *models.TaskSubmitInput) (*models.Task, error) {
	if input == nil {
		return nil, errors.Wrap(tasks.ErrInvalidInput, "empty submission")
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("SubmitTask - ValidateStruct error: %v", err)
		return nil, errors.Wrap(tasks.ErrInvalidInput, err.Error())
	}
	if input.VideoURL == "" && input.InputKey == "" {
		return nil, errors.Wrap(tasks.ErrInvalidInput, "video_url or uploaded file required")
	}

	if input.Language == "" {
		input.Language = u.cfg.AI.DefaultLanguage
	}
	if input.Voice == "" {
		input.Voice = u.cfg.AI.DefaultVoice
	}

	task := &models.Task{
		TaskID:      models.NewTaskID(input.Kind, time.Now()),
		Kind:        input.Kind,
		Status:      models.TaskStatusPending,
		VideoID:     uuid.New().String(),
		InputURL:    input.VideoURL,
		InputKey:    input.InputKey,
		Language:    input.Language,
		Voice:       input.Voice,
		SubmittedAt: time.Now(),
	}

	video := &models.Video{
		VideoID:   uuid.MustParse(task.VideoID),
		TaskID:    task.TaskID,
		FileName:  input.FileName,
		SourceURL: input.VideoURL,
		S3Key:     input.InputKey,
	}
	if input.InputKey != "" {
		video.S3Bucket = u.cfg.S3.InputBucket
	}
	if _, err := u.taskRepo.CreateVideo(ctx, video); err != nil {
		u.logger.Errorf("SubmitTask - CreateVideo error: %v", err)
		return nil, fmt.Errorf("failed to record video: %v", err)
	}
	if _, err := u.taskRepo.CreateTask(ctx, task); err != nil {
		u.logger.Errorf("SubmitTask - CreateTask error: %v", err)
		return nil, fmt.Errorf("failed to record task: %v", err)
	}

	if err := u.redisRepo.SaveTask(ctx, task); err != nil {
		u.logger.Errorf("SubmitTask - SaveTask error: %v", err)
		return nil, errors.Wrap(tasks.ErrQueueUnavailable, err.Error())
	}
	if err := u.redisRepo.EnqueueTask(ctx, task); err != nil {
		u.logger.Errorf("SubmitTask - EnqueueTask error: %v", err)
		return nil, err
	}

	u.logger.Infof("task %s submitted (kind=%s input=%s)", task.TaskID, task.Kind, task.InputRef())
	return task, nil
}

// UploadSource stores an uploaded file in the input bucket and returns
// the object key to be used as the task's input reference.
func (u *taskUC) UploadSource(ctx context.Context, input *models.UploadInput) (string, error) {
	if input == nil || input.File == nil || input.Name == "" {
		return "", errors.Wrap(tasks.ErrInvalidInput, "missing upload payload")
	}
	input.BucketName = u.cfg.S3.InputBucket
	input.Key = fmt.Sprintf("uploads/%s/%s", uuid.New().String(), input.Name)

	if _, err := u.awsRepo.PutObject(ctx, *input); err != nil {
		u.logger.Errorf("UploadSource - PutObject error: %v", err)
		return "", fmt.Errorf("failed to store upload: %v", err)
	}
	return input.Key, nil
}

// GetTaskStatus reads the live record from the status store, falling
// back to the Postgres archive for tasks whose Redis record expired.
func (u *taskUC) GetTaskStatus(ctx context.Context, taskID string) (*models.Task, error) {
	if taskID == "" {
		return nil, errors.Wrap(tasks.ErrInvalidInput, "empty task id")
	}
	task, err := u.redisRepo.GetTask(ctx, taskID)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, tasks.ErrTaskNotFound) {
		u.logger.Errorf("GetTaskStatus - GetTask error: %v", err)
		return nil, fmt.Errorf("failed to fetch task status: %v", err)
	}
	return u.taskRepo.GetTaskByID(ctx, taskID)
}

func (u *taskUC) GetTaskResult(ctx context.Context, taskID string) (*models.TaskResult, error) {
	task, err := u.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, errors.Wrapf(tasks.ErrResultNotReady, "task %s is %s", taskID, task.Status)
	}

	result := &models.TaskResult{
		TaskID:    task.TaskID,
		Kind:      task.Kind,
		Status:    task.Status,
		Artifacts: make([]models.ArtifactRef, 0, len(task.OutputRefs)),
	}
	for _, ref := range task.OutputRefs {
		artifact := models.ArtifactRef{URI: ref}
		if bucket, key, err := parseS3URI(ref); err == nil {
			url, err := u.awsRepo.GetPresignedURL(ctx, bucket, key, resultURLExpiry)
			if err != nil {
				u.logger.Warnf("GetTaskResult - presign failed for %s: %v", ref, err)
			} else {
				artifact.DownloadURL = url
			}
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}
	return result, nil
}

func (u *taskUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	if videoID == uuid.Nil {
		return nil, errors.Wrap(tasks.ErrInvalidInput, "empty video id")
	}
	return u.taskRepo.GetVideoByID(ctx, videoID)
}

func (u *taskUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	if pagination == nil {
		pagination = &utils.Pagination{Page: 1, Size: 10}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}
	return u.taskRepo.GetVideos(ctx, pagination)
}

func parseS3URI(uri string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	if trimmed == uri {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %s", uri)
	}
	return parts[0], parts[1], nil
}
