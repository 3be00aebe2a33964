package worker

import (
	"context"
	"testing"
	"time"

	"github.com/miresse/video-accessibility/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerCompletesTask(t *testing.T) {
	e := newEnv(t)
	e.ai.transcript = &models.Transcript{Segments: []models.Segment{
		{StartMS: 0, EndMS: 1000, Text: "hola"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := newTask(models.KindSubtitles)
	require.NoError(t, e.redisRepo.SaveTask(ctx, task))
	require.NoError(t, e.redisRepo.EnqueueTask(ctx, task))

	e.worker.Start(ctx)
	defer e.worker.Wait()

	require.Eventually(t, func() bool {
		current := e.redisRepo.status(task.TaskID)
		return current != nil && current.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	current := e.redisRepo.status(task.TaskID)
	assert.Equal(t, models.TaskStatusCompleted, current.Status)
	require.Len(t, current.OutputRefs, 1)
	assert.Contains(t, current.OutputRefs[0], "subtitles.srt")

	archived, err := e.pgRepo.GetTaskByID(context.Background(), task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, archived.Status)
}

func TestWorkerRecordsFailure(t *testing.T) {
	e := newEnv(t)
	e.fetcher.err = errors.New("dns lookup failed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := newTask(models.KindAudioDescription)
	require.NoError(t, e.redisRepo.SaveTask(ctx, task))
	require.NoError(t, e.redisRepo.EnqueueTask(ctx, task))

	e.worker.Start(ctx)
	defer e.worker.Wait()

	require.Eventually(t, func() bool {
		current := e.redisRepo.status(task.TaskID)
		return current != nil && current.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	current := e.redisRepo.status(task.TaskID)
	assert.Equal(t, models.TaskStatusError, current.Status)
	assert.Contains(t, current.ErrorMessage, "fetch failed at step fetch_input")
	assert.Contains(t, current.ErrorMessage, "dns lookup failed")
	assert.Empty(t, current.OutputRefs)
}

func TestWorkerDropsRedeliveredTerminalTask(t *testing.T) {
	e := newEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := newTask(models.KindSubtitles)
	task.Status = models.TaskStatusCompleted
	require.NoError(t, e.redisRepo.SaveTask(ctx, task))
	require.NoError(t, e.redisRepo.EnqueueTask(ctx, task))

	e.worker.Start(ctx)
	defer e.worker.Wait()

	require.Eventually(t, func() bool {
		e.redisRepo.mu.Lock()
		defer e.redisRepo.mu.Unlock()
		return len(e.redisRepo.queue) == 0
	}, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.Equal(t, 0, e.fetcher.callCount())
	current := e.redisRepo.status(task.TaskID)
	assert.Equal(t, models.TaskStatusCompleted, current.Status)
}

func TestWorkerProcessesInSubmissionOrder(t *testing.T) {
	e := newEnv(t)
	e.ai.transcript = &models.Transcript{Segments: []models.Segment{
		{StartMS: 0, EndMS: 1000, Text: "ok"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := newTask(models.KindSubtitles)
	first.TaskID = "SUBTITLES_1"
	second := newTask(models.KindSubtitles)
	second.TaskID = "SUBTITLES_2"
	for _, task := range []*models.Task{first, second} {
		require.NoError(t, e.redisRepo.SaveTask(ctx, task))
		require.NoError(t, e.redisRepo.EnqueueTask(ctx, task))
	}

	e.worker.Start(ctx)
	defer e.worker.Wait()

	require.Eventually(t, func() bool {
		a := e.redisRepo.status(first.TaskID)
		b := e.redisRepo.status(second.TaskID)
		return a != nil && a.Status.Terminal() && b != nil && b.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	a := e.redisRepo.status(first.TaskID)
	b := e.redisRepo.status(second.TaskID)
	assert.Equal(t, models.TaskStatusCompleted, a.Status)
	assert.Equal(t, models.TaskStatusCompleted, b.Status)
	assert.False(t, a.StartedAt.After(b.StartedAt), "first submitted task should start first")
}
