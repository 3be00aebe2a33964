package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/pkg/errors"
)

type taskRedisRepo struct {
	redisClient *redis.Client
	queueKey    string
	statusKey   string
	lockKey     string
	claimTTL    time.Duration
}

func NewTaskRedisRepo(redisClient *redis.Client, cfg *config.Config) tasks.RedisRepository {
	claimTTL := time.Duration(cfg.Worker.ClaimTTLMin) * time.Minute
	if claimTTL <= 0 {
		claimTTL = 30 * time.Minute
	}
	return &taskRedisRepo{
		redisClient: redisClient,
		queueKey:    cfg.Redis.TaskQueueKey,
		statusKey:   cfg.Redis.StatusPrefix,
		lockKey:     cfg.Redis.LockPrefix,
		claimTTL:    claimTTL,
	}
}

// EnqueueTask appends to the tail of the queue list; DequeueTask pops
// from the head, so enqueue order is dequeue order.
func (t *taskRedisRepo) EnqueueTask(ctx context.Context, task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "taskRedisRepo.EnqueueTask.Marshal")
	}
	if err := t.redisClient.RPush(ctx, t.queueKey, data).Err(); err != nil {
		return errors.Wrap(tasks.ErrQueueUnavailable, err.Error())
	}
	return nil
}

func (t *taskRedisRepo) DequeueTask(ctx context.Context, timeout time.Duration) (*models.Task, error) {
	res, err := t.redisClient.BLPop(ctx, timeout, t.queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask.BLPop")
	}
	task := &models.Task{}
	if err := json.Unmarshal([]byte(res[1]), task); err != nil {
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask.Unmarshal")
	}
	return task, nil
}

// ClaimTask enforces single-writer-per-task. The TTL acts as a
// visibility timeout: a crashed worker's claim expires and a redelivered
// copy of the job can be picked up again.
func (t *taskRedisRepo) ClaimTask(ctx context.Context, taskID string) (bool, error) {
	locked, err := t.redisClient.SetNX(ctx, t.lockKey+taskID, 1, t.claimTTL).Result()
	if err != nil {
		return false, errors.Wrap(err, "taskRedisRepo.ClaimTask.SetNX")
	}
	return locked, nil
}

func (t *taskRedisRepo) ReleaseClaim(ctx context.Context, taskID string) error {
	if err := t.redisClient.Del(ctx, t.lockKey+taskID).Err(); err != nil {
		return errors.Wrap(err, "taskRedisRepo.ReleaseClaim.Del")
	}
	return nil
}

// SaveTask writes the full status record. A record that already reached
// a terminal status is never overwritten, which suppresses duplicate
// delivery after a claim expires.
func (t *taskRedisRepo) SaveTask(ctx context.Context, task *models.Task) error {
	key := t.statusKey + task.TaskID

	current, err := t.redisClient.HGet(ctx, key, "status").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "taskRedisRepo.SaveTask.HGet")
	}
	if models.TaskStatus(current).Terminal() {
		return nil
	}

	data, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "taskRedisRepo.SaveTask.Marshal")
	}

	pipe := t.redisClient.Pipeline()
	pipe.HSet(ctx, key, "status", string(task.Status))
	pipe.HSet(ctx, key, "step", string(task.Step))
	pipe.HSet(ctx, key, "task_data", data)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "taskRedisRepo.SaveTask.Exec")
	}
	return nil
}

func (t *taskRedisRepo) SetStep(ctx context.Context, taskID string, step models.TaskStep) error {
	key := t.statusKey + taskID
	if err := t.redisClient.HSet(ctx, key, "step", string(step)).Err(); err != nil {
		return errors.Wrap(err, "taskRedisRepo.SetStep.HSet")
	}
	return nil
}

func (t *taskRedisRepo) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	data, err := t.redisClient.HGet(ctx, t.statusKey+taskID, "task_data").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tasks.ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "taskRedisRepo.GetTask.HGet")
	}
	task := &models.Task{}
	if err := json.Unmarshal([]byte(data), task); err != nil {
		return nil, errors.Wrap(err, "taskRedisRepo.GetTask.Unmarshal")
	}
	// The step field may have advanced since the record was written.
	if step, err := t.redisClient.HGet(ctx, t.statusKey+taskID, "step").Result(); err == nil {
		task.Step = models.TaskStep(step)
	}
	return task, nil
}
