package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/logger"
	"github.com/miresse/video-accessibility/pkg/utils"
	"github.com/pkg/errors"
)

type taskHandler struct {
	taskUC tasks.UseCase
	logger logger.Logger
}

func NewTaskHandler(taskUC tasks.UseCase, log logger.Logger) tasks.Handler {
	return &taskHandler{
		taskUC: taskUC,
		logger: log,
	}
}

type submitResponse struct {
	TaskID string            `json:"task_id"`
	Status models.TaskStatus `json:"status"`
}

type statusResponse struct {
	TaskID   string            `json:"task_id"`
	Status   models.TaskStatus `json:"status"`
	Progress models.TaskStep   `json:"progress,omitempty"`
	Output   []string          `json:"output,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (h *taskHandler) SubmitTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.TaskSubmitInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		task, err := h.taskUC.SubmitTask(c.Request().Context(), input)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusAccepted, submitResponse{TaskID: task.TaskID, Status: task.Status})
	}
}

func (h *taskHandler) UploadAndSubmit() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
		}
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read uploaded file"})
		}
		defer src.Close()

		ctx := c.Request().Context()
		key, err := h.taskUC.UploadSource(ctx, &models.UploadInput{
			File:     src,
			Name:     fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		})
		if err != nil {
			return h.mapError(c, err)
		}

		input := &models.TaskSubmitInput{
			InputKey: key,
			FileName: fileHeader.Filename,
			Kind:     models.TaskKind(c.FormValue("kind")),
			Language: c.FormValue("language"),
			Voice:    c.FormValue("voice"),
		}
		task, err := h.taskUC.SubmitTask(ctx, input)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusAccepted, submitResponse{TaskID: task.TaskID, Status: task.Status})
	}
}

func (h *taskHandler) GetTaskStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := h.taskUC.GetTaskStatus(c.Request().Context(), c.Param("task_id"))
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, statusResponse{
			TaskID:   task.TaskID,
			Status:   task.Status,
			Progress: task.Step,
			Output:   task.OutputRefs,
			Error:    task.ErrorMessage,
		})
	}
}

func (h *taskHandler) GetTaskResult() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := h.taskUC.GetTaskResult(c.Request().Context(), c.Param("task_id"))
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (h *taskHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		video, err := h.taskUC.GetVideo(c.Request().Context(), videoID)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *taskHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		videos, err := h.taskUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, videos)
	}
}

func (h *taskHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, tasks.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, tasks.ErrResultNotReady):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, tasks.ErrQueueUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		h.logger.Errorf("request %s failed: %v", utils.GetRequestID(c), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
