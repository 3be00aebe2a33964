package worker

import (
	"context"
	"sync"
	"time"

	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/logger"
	"github.com/miresse/video-accessibility/pkg/utils"
)

const defaultPollInterval = 2 * time.Second

// Worker pulls tasks from the shared queue and drives each one through
// the pipeline to a terminal status. Multiple workers may run; the
// claim lock keeps any single task on one worker.
type Worker struct {
	cfg       *config.Config
	redisRepo tasks.RedisRepository
	taskRepo  tasks.Repository
	pipeline  *Pipeline
	logger    logger.Logger
	wg        sync.WaitGroup
}

func NewWorker(
	cfg *config.Config,
	redisRepo tasks.RedisRepository,
	taskRepo tasks.Repository,
	pipeline *Pipeline,
	log logger.Logger,
) *Worker {
	return &Worker{
		cfg:       cfg,
		redisRepo: redisRepo,
		taskRepo:  taskRepo,
		pipeline:  pipeline,
		logger:    log,
	}
}

func (w *Worker) Start(ctx context.Context) {
	count := w.cfg.Worker.WorkerCount
	if count <= 0 {
		count = 1
	}
	w.logger.Infof("starting %d workers on queue %s", count, w.cfg.Redis.TaskQueueKey)
	for i := 0; i < count; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	poll := w.cfg.Worker.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !ok {
			w.logger.Infof("CPU usage %.2f%% too high, waiting", usage)
			sleepCtx(ctx, poll)
			continue
		}

		task, err := w.redisRepo.DequeueTask(ctx, poll)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Errorf("dequeue failed: %v", err)
			sleepCtx(ctx, poll)
			continue
		}
		if task == nil {
			continue
		}
		w.process(ctx, task)
	}
}

// process claims the task and drives it PENDING -> RUNNING -> terminal.
// A task already terminal in the status store is a redelivered
// duplicate and is dropped.
func (w *Worker) process(ctx context.Context, task *models.Task) {
	claimed, err := w.redisRepo.ClaimTask(ctx, task.TaskID)
	if err != nil {
		w.logger.Errorf("task %s: claim failed: %v", task.TaskID, err)
		return
	}
	if !claimed {
		w.logger.Infof("task %s already claimed, skipping", task.TaskID)
		return
	}
	defer func() {
		if err := w.redisRepo.ReleaseClaim(ctx, task.TaskID); err != nil {
			w.logger.Warnf("task %s: release claim failed: %v", task.TaskID, err)
		}
	}()

	if current, err := w.redisRepo.GetTask(ctx, task.TaskID); err == nil && current.Status.Terminal() {
		w.logger.Infof("task %s already %s, dropping duplicate delivery", task.TaskID, current.Status)
		return
	}

	task.Status = models.TaskStatusRunning
	task.StartedAt = time.Now()
	task.Step = models.StepFetchInput
	w.save(ctx, task)

	w.logger.Infof("task %s: processing (kind=%s)", task.TaskID, task.Kind)
	outputs, runErr := w.pipeline.Run(ctx, task)

	task.CompletedAt = time.Now()
	if runErr != nil {
		task.Status = models.TaskStatusError
		task.ErrorMessage = runErr.Error()
		w.logger.Errorf("task %s failed: %v", task.TaskID, runErr)
	} else {
		task.Status = models.TaskStatusCompleted
		task.OutputRefs = outputs
		w.logger.Infof("task %s completed with %d artifacts", task.TaskID, len(outputs))
	}
	w.save(ctx, task)
}

// save writes the status store first (source of truth), then mirrors to
// the archive best-effort.
func (w *Worker) save(ctx context.Context, task *models.Task) {
	if err := w.redisRepo.SaveTask(ctx, task); err != nil {
		w.logger.Errorf("task %s: status write failed: %v", task.TaskID, err)
	}
	if err := w.taskRepo.UpdateTask(ctx, task); err != nil {
		w.logger.Warnf("task %s: archive write failed: %v", task.TaskID, err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
