package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/miresse/video-accessibility/internal/middleware"
	taskHttp "github.com/miresse/video-accessibility/internal/tasks/delivery/http"
	taskRepository "github.com/miresse/video-accessibility/internal/tasks/repository"
	taskUsecase "github.com/miresse/video-accessibility/internal/tasks/usecase"
	"github.com/miresse/video-accessibility/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	tRepo := taskRepository.NewTaskRepo(s.db)
	tAWSRepo := taskRepository.NewAwsRepository(s.s3Client, s.preSignClient)
	tRedisRepo := taskRepository.NewTaskRedisRepo(s.redisClient, s.cfg)

	taskUC := taskUsecase.NewTaskUseCase(s.cfg, tRepo, tRedisRepo, tAWSRepo, s.logger)

	taskHandlers := taskHttp.NewTaskHandler(taskUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	taskGroup := v1.Group("/tasks")
	videoGroup := v1.Group("/videos")

	taskHttp.MapTaskRoutes(taskGroup, taskHandlers)
	taskHttp.MapVideoRoutes(videoGroup, taskHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
