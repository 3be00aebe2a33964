package worker

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/miresse/video-accessibility/internal/ai"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/miresse/video-accessibility/internal/subtitle"
	"github.com/miresse/video-accessibility/internal/tasks"
	"github.com/miresse/video-accessibility/pkg/logger"
)

// Pipeline executes the ordered processing steps for one claimed task.
// Steps run strictly in sequence; the first failure terminates the task
// and earlier step outputs are left in place.
type Pipeline struct {
	cfg         *config.Config
	redisRepo   tasks.RedisRepository
	taskRepo    tasks.Repository
	awsRepo     tasks.AWSRepository
	fetcher     Fetcher
	scenes      ai.SceneDetector
	describer   ai.Describer
	transcriber ai.Transcriber
	tts         ai.SpeechSynthesizer
	logger      logger.Logger
}

func NewPipeline(
	cfg *config.Config,
	redisRepo tasks.RedisRepository,
	taskRepo tasks.Repository,
	awsRepo tasks.AWSRepository,
	fetcher Fetcher,
	scenes ai.SceneDetector,
	describer ai.Describer,
	transcriber ai.Transcriber,
	tts ai.SpeechSynthesizer,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		redisRepo:   redisRepo,
		taskRepo:    taskRepo,
		awsRepo:     awsRepo,
		fetcher:     fetcher,
		scenes:      scenes,
		describer:   describer,
		transcriber: transcriber,
		tts:         tts,
		logger:      log,
	}
}

// Run resolves the input, stores the source, and produces the artifacts
// for the task's kind. It returns the stored artifact URIs.
func (p *Pipeline) Run(ctx context.Context, task *models.Task) ([]string, error) {
	storageURI, err := p.resolveAndStore(ctx, task)
	if err != nil {
		return nil, err
	}

	switch task.Kind {
	case models.KindAudioDescription:
		return p.runAudioDescription(ctx, task, storageURI)
	case models.KindSubtitles:
		return p.runSubtitles(ctx, task, storageURI)
	default:
		return nil, fmt.Errorf("unsupported task kind %q", task.Kind)
	}
}

// resolveAndStore covers steps 1 and 2: fetch the input and place it in
// durable storage, recording the storage URI on the video record.
func (p *Pipeline) resolveAndStore(ctx context.Context, task *models.Task) (string, error) {
	p.step(ctx, task.TaskID, models.StepFetchInput)

	var source io.ReadCloser
	var size int64
	fileName := "source.mp4"

	switch {
	case task.InputURL != "":
		body, n, err := p.fetcher.FetchURL(ctx, task.InputURL)
		if err != nil {
			return "", fetchError(models.StepFetchInput, err)
		}
		source = body
		size = n
		if base := path.Base(task.InputURL); base != "." && base != "/" {
			fileName = base
		}
	case task.InputKey != "":
		obj, err := p.awsRepo.GetObject(ctx, p.cfg.S3.InputBucket, task.InputKey)
		if err != nil {
			return "", fetchError(models.StepFetchInput, err)
		}
		source = obj.Body
		if obj.ContentLength != nil {
			size = *obj.ContentLength
		}
		fileName = path.Base(task.InputKey)
	default:
		return "", fetchError(models.StepFetchInput, fmt.Errorf("task %s has no input reference", task.TaskID))
	}
	defer source.Close()

	p.step(ctx, task.TaskID, models.StepStoreSource)
	key := fmt.Sprintf("sources/%s/%s", task.VideoID, fileName)
	storageURI, err := p.awsRepo.PutObject(ctx, models.UploadInput{
		File:       source,
		Name:       fileName,
		MimeType:   "video/mp4",
		Size:       size,
		Key:        key,
		BucketName: p.cfg.S3.InputBucket,
	})
	if err != nil {
		return "", storageError(models.StepStoreSource, err)
	}

	p.updateVideo(ctx, task, key, storageURI, size)
	return storageURI, nil
}

func (p *Pipeline) runAudioDescription(ctx context.Context, task *models.Task, storageURI string) ([]string, error) {
	p.step(ctx, task.TaskID, models.StepDetectScenes)
	scenes, err := p.scenes.DetectScenes(ctx, storageURI)
	if err != nil {
		return nil, externalError(models.StepDetectScenes, err)
	}

	plan := models.NewDescriptionPlan(scenes)
	p.logger.Infof("task %s: description plan %s (%d scenes)", task.TaskID, plan.Mode, len(plan.Scenes))

	p.step(ctx, task.TaskID, models.StepGenerateText)
	script, err := p.buildScript(ctx, plan, storageURI, task.Language)
	if err != nil {
		return nil, externalError(models.StepGenerateText, err)
	}

	p.step(ctx, task.TaskID, models.StepSynthesizeSpeech)
	audio, err := p.tts.Synthesize(ctx, script, task.Voice)
	if err != nil {
		return nil, externalError(models.StepSynthesizeSpeech, err)
	}

	p.step(ctx, task.TaskID, models.StepStoreArtifact)
	audioURI, err := p.storeArtifact(ctx, task.TaskID, "description.mp3", "audio/mpeg", audio)
	if err != nil {
		return nil, err
	}
	scriptURI, err := p.storeArtifact(ctx, task.TaskID, "description.txt", "text/plain; charset=utf-8", []byte(script))
	if err != nil {
		return nil, err
	}
	return []string{audioURI, scriptURI}, nil
}

// buildScript turns the chosen description plan into narration text.
// Per-scene mode emits one timed paragraph per scene; whole-video mode
// asks for a single description of the full video.
func (p *Pipeline) buildScript(ctx context.Context, plan models.DescriptionPlan, storageURI, language string) (string, error) {
	if plan.Mode == models.DescribeWholeVideo {
		return p.describer.DescribeVideo(ctx, storageURI, language)
	}

	lines := make([]string, 0, len(plan.Scenes))
	for _, scene := range plan.Scenes {
		text, err := p.describer.DescribeScene(ctx, storageURI, scene, language)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", subtitle.Timestamp(scene.StartMS), text))
	}
	return strings.Join(lines, "\n"), nil
}

func (p *Pipeline) runSubtitles(ctx context.Context, task *models.Task, storageURI string) ([]string, error) {
	p.step(ctx, task.TaskID, models.StepTranscribe)
	transcript, err := p.transcriber.Transcribe(ctx, storageURI, task.Language)
	if err != nil {
		return nil, externalError(models.StepTranscribe, err)
	}
	if transcript.Empty() {
		return nil, externalError(models.StepTranscribe, fmt.Errorf("transcription produced no segments"))
	}

	p.step(ctx, task.TaskID, models.StepFormatSubtitles)
	srt := subtitle.FormatSRT(transcript)

	p.step(ctx, task.TaskID, models.StepStoreArtifact)
	uri, err := p.storeArtifact(ctx, task.TaskID, "subtitles"+subtitle.Extension, "application/x-subrip", []byte(srt))
	if err != nil {
		return nil, err
	}
	return []string{uri}, nil
}

func (p *Pipeline) storeArtifact(ctx context.Context, taskID, name, mimeType string, data []byte) (string, error) {
	uri, err := p.awsRepo.PutObject(ctx, models.UploadInput{
		File:       strings.NewReader(string(data)),
		Name:       name,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		Key:        fmt.Sprintf("artifacts/%s/%s", taskID, name),
		BucketName: p.cfg.S3.OutputBucket,
	})
	if err != nil {
		return "", storageError(models.StepStoreArtifact, err)
	}
	return uri, nil
}

// step is best-effort progress reporting; a failed write never aborts
// the pipeline.
func (p *Pipeline) step(ctx context.Context, taskID string, step models.TaskStep) {
	if err := p.redisRepo.SetStep(ctx, taskID, step); err != nil {
		p.logger.Warnf("task %s: failed to record step %s: %v", taskID, step, err)
	}
}

func (p *Pipeline) updateVideo(ctx context.Context, task *models.Task, key, storageURI string, size int64) {
	videoID, err := uuid.Parse(task.VideoID)
	if err != nil {
		p.logger.Warnf("task %s: bad video id %q: %v", task.TaskID, task.VideoID, err)
		return
	}
	video := &models.Video{
		VideoID:    videoID,
		S3Key:      key,
		S3Bucket:   p.cfg.S3.InputBucket,
		StorageURI: storageURI,
		FileSize:   size,
	}
	if err := p.taskRepo.UpdateVideo(ctx, video); err != nil {
		p.logger.Warnf("task %s: failed to update video record: %v", task.TaskID, err)
	}
}
