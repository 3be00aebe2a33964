package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/miresse/video-accessibility/internal/ai/rest"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/tasks/repository"
	"github.com/miresse/video-accessibility/internal/worker"
	"github.com/miresse/video-accessibility/pkg/db/aws"
	"github.com/miresse/video-accessibility/pkg/db/postgres"
	clientRedis "github.com/miresse/video-accessibility/pkg/db/redis"
	"github.com/miresse/video-accessibility/pkg/logger"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()
	appLogger.Infof("redis connected")

	awsClient, presignClient, err := aws.NewAWSClient(&cfg.S3)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}

	taskRepo := repository.NewTaskRepo(psqlDB)
	redisRepo := repository.NewTaskRedisRepo(redisClient, cfg)
	awsRepo := repository.NewAwsRepository(awsClient, presignClient)

	fetcher := worker.NewHTTPFetcher(cfg.AI.RequestTimeout)
	pipeline := worker.NewPipeline(
		cfg,
		redisRepo,
		taskRepo,
		awsRepo,
		fetcher,
		rest.NewSceneDetector(&cfg.AI),
		rest.NewDescriber(&cfg.AI),
		rest.NewTranscriber(&cfg.AI),
		rest.NewSpeechSynthesizer(&cfg.AI),
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("shutting down workers")
		cancel()
	}()

	w := worker.NewWorker(cfg, redisRepo, taskRepo, pipeline, appLogger)
	w.Start(ctx)
	w.Wait()
}
