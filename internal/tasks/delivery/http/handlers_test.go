package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/logger"
	"github.com/miresse/video-accessibility/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	submitted *models.Task
	submitErr error
	statuses  map[string]*models.Task
	results   map[string]*models.TaskResult
}

func newFakeUseCase() *fakeUseCase {
	return &fakeUseCase{
		statuses: map[string]*models.Task{},
		results:  map[string]*models.TaskResult{},
	}
}

func (f *fakeUseCase) SubmitTask(ctx context.Context, input *models.TaskSubmitInput) (*models.Task, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitted, nil
}

func (f *fakeUseCase) UploadSource(ctx context.Context, input *models.UploadInput) (string, error) {
	return "uploads/fixed/" + input.Name, nil
}

func (f *fakeUseCase) GetTaskStatus(ctx context.Context, taskID string) (*models.Task, error) {
	task, ok := f.statuses[taskID]
	if !ok {
		return nil, tasks.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeUseCase) GetTaskResult(ctx context.Context, taskID string) (*models.TaskResult, error) {
	task, ok := f.statuses[taskID]
	if !ok {
		return nil, tasks.ErrTaskNotFound
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, errors.Wrap(tasks.ErrResultNotReady, taskID)
	}
	return f.results[taskID], nil
}

func (f *fakeUseCase) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	return nil, tasks.ErrTaskNotFound
}

func (f *fakeUseCase) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	return &models.VideoList{Videos: []*models.Video{}}, nil
}

func testHandler(uc tasks.UseCase) tasks.Handler {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "development"},
		Logger: config.Logger{Level: "error", Encoding: "console"},
	}
	log := logger.NewApiLogger(cfg)
	log.InitLogger()
	return NewTaskHandler(uc, log)
}

func TestSubmitTaskHandler(t *testing.T) {
	uc := newFakeUseCase()
	uc.submitted = &models.Task{TaskID: "SUBTITLES_1700000000000", Status: models.TaskStatusPending}
	h := testHandler(uc)

	e := echo.New()
	body := `{"video_url":"https://example.com/v.mp4","kind":"SUBTITLES"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/submit", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SubmitTask()(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "SUBTITLES_1700000000000", res["task_id"])
	assert.Equal(t, "PENDING", res["status"])
}

func TestSubmitTaskHandlerInvalidInput(t *testing.T) {
	uc := newFakeUseCase()
	uc.submitErr = errors.Wrap(tasks.ErrInvalidInput, "kind must be one of SUBTITLES AUDIODESCRIPTION")
	h := testHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/submit", strings.NewReader(`{"kind":"DUBBING"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SubmitTask()(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTaskHandlerQueueDown(t *testing.T) {
	uc := newFakeUseCase()
	uc.submitErr = errors.Wrap(tasks.ErrQueueUnavailable, "dial tcp: connection refused")
	h := testHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/submit", strings.NewReader(`{"video_url":"https://example.com/v.mp4","kind":"SUBTITLES"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SubmitTask()(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetTaskStatusHandler(t *testing.T) {
	uc := newFakeUseCase()
	uc.statuses["AUDIODESCRIPTION_5"] = &models.Task{
		TaskID: "AUDIODESCRIPTION_5",
		Status: models.TaskStatusRunning,
		Step:   models.StepDetectScenes,
	}
	h := testHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("task_id")
	c.SetParamValues("AUDIODESCRIPTION_5")

	require.NoError(t, h.GetTaskStatus()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, models.TaskStatusRunning, res.Status)
	assert.Equal(t, models.StepDetectScenes, res.Progress)
}

func TestGetTaskStatusHandlerNotFound(t *testing.T) {
	h := testHandler(newFakeUseCase())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("task_id")
	c.SetParamValues("SUBTITLES_404")

	require.NoError(t, h.GetTaskStatus()(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTaskResultHandlerNotReady(t *testing.T) {
	uc := newFakeUseCase()
	uc.statuses["SUBTITLES_8"] = &models.Task{TaskID: "SUBTITLES_8", Status: models.TaskStatusRunning}
	h := testHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("task_id")
	c.SetParamValues("SUBTITLES_8")

	require.NoError(t, h.GetTaskResult()(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetTaskResultHandler(t *testing.T) {
	uc := newFakeUseCase()
	uc.statuses["SUBTITLES_8"] = &models.Task{TaskID: "SUBTITLES_8", Status: models.TaskStatusCompleted}
	uc.results["SUBTITLES_8"] = &models.TaskResult{
		TaskID: "SUBTITLES_8",
		Kind:   models.KindSubtitles,
		Status: models.TaskStatusCompleted,
		Artifacts: []models.ArtifactRef{
			{URI: "s3://artifacts-output/artifacts/SUBTITLES_8/subtitles.srt", DownloadURL: "https://signed.example.com/x"},
		},
	}
	h := testHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("task_id")
	c.SetParamValues("SUBTITLES_8")

	require.NoError(t, h.GetTaskResult()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res models.TaskResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Artifacts, 1)
	assert.NotEmpty(t, res.Artifacts[0].DownloadURL)
}

func TestGetVideoByIDHandlerBadID(t *testing.T) {
	h := testHandler(newFakeUseCase())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("video_id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetVideoByID()(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
