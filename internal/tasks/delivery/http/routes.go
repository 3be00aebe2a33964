package http

import (
	"github.com/labstack/echo/v4"
	"github.com/miresse/video-accessibility/internal/tasks"
)

func MapTaskRoutes(taskGroup *echo.Group, h tasks.Handler) {
	taskGroup.POST("/submit", h.SubmitTask())
	taskGroup.POST("/upload", h.UploadAndSubmit())
	taskGroup.GET("/:task_id/status", h.GetTaskStatus())
	taskGroup.GET("/:task_id/result", h.GetTaskResult())
}

func MapVideoRoutes(videoGroup *echo.Group, h tasks.Handler) {
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.GET("/list-videos", h.ListVideos())
}
