package tasks

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitTask() echo.HandlerFunc
	UploadAndSubmit() echo.HandlerFunc
	GetTaskStatus() echo.HandlerFunc
	GetTaskResult() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
}
