package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/utils"
	"github.com/pkg/errors"
)

const outputRefsSep = "\n"

type taskRepo struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) tasks.Repository {
	return &taskRepo{
		db: db,
	}
}

func (r *taskRepo) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if _, err := r.db.ExecContext(
		ctx,
		createTaskQuery,
		task.TaskID,
		task.Kind,
		task.Status,
		task.Step,
		task.VideoID,
		task.InputURL,
		task.InputKey,
		task.Language,
		task.Voice,
		strings.Join(task.OutputRefs, outputRefsSep),
		task.ErrorMessage,
		task.SubmittedAt,
	); err != nil {
		return nil, errors.Wrap(err, "taskRepo.CreateTask")
	}
	return task, nil
}

func (r *taskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	if _, err := r.db.ExecContext(
		ctx,
		updateTaskQuery,
		task.TaskID,
		task.Status,
		task.Step,
		strings.Join(task.OutputRefs, outputRefsSep),
		task.ErrorMessage,
		task.StartedAt,
		task.CompletedAt,
	); err != nil {
		return errors.Wrap(err, "taskRepo.UpdateTask")
	}
	return nil
}

func (r *taskRepo) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	task := &models.Task{}
	var outputRefs string
	var startedAt, completedAt sql.NullTime
	row := r.db.QueryRowxContext(ctx, getTaskByIDQuery, taskID)
	if err := row.Scan(
		&task.TaskID,
		&task.Kind,
		&task.Status,
		&task.Step,
		&task.VideoID,
		&task.InputURL,
		&task.InputKey,
		&task.Language,
		&task.Voice,
		&outputRefs,
		&task.ErrorMessage,
		&task.SubmittedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tasks.ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "taskRepo.GetTaskByID")
	}
	if outputRefs != "" {
		task.OutputRefs = strings.Split(outputRefs, outputRefsSep)
	}
	if startedAt.Valid {
		task.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = completedAt.Time
	}
	return task, nil
}

func (r *taskRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	created := &models.Video{}
	if err := r.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.VideoID,
		video.TaskID,
		video.FileName,
		video.SourceURL,
		video.S3Key,
		video.S3Bucket,
		video.StorageURI,
		video.FileSize,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "taskRepo.CreateVideo")
	}
	return created, nil
}

func (r *taskRepo) UpdateVideo(ctx context.Context, video *models.Video) error {
	if _, err := r.db.ExecContext(
		ctx,
		updateVideoQuery,
		video.VideoID,
		video.S3Key,
		video.S3Bucket,
		video.StorageURI,
		video.FileSize,
	); err != nil {
		return errors.Wrap(err, "taskRepo.UpdateVideo")
	}
	return nil
}

func (r *taskRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video := &models.Video{}
	if err := r.db.QueryRowxContext(
		ctx,
		getVideoByIDQuery,
		videoID,
	).StructScan(video); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tasks.ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "taskRepo.GetVideoByID")
	}
	return video, nil
}

func (r *taskRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalVideosCountQuery); err != nil {
		return nil, errors.Wrap(err, "taskRepo.GetVideos.count")
	}
	if totalCount == 0 {
		return &models.VideoList{
			Videos:     make([]*models.Video, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := r.db.QueryxContext(ctx, getVideosQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "taskRepo.GetVideos.query")
	}
	defer rows.Close()

	videos := make([]*models.Video, 0, pq.GetSize())
	for rows.Next() {
		var video models.Video
		if err = rows.StructScan(&video); err != nil {
			return nil, errors.Wrap(err, "taskRepo.GetVideos.scan")
		}
		videos = append(videos, &video)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "taskRepo.GetVideos.rows")
	}
	return &models.VideoList{
		Videos:     videos,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}
