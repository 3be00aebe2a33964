package models

import (
	"fmt"
	"time"
)

type TaskKind string

const (
	KindSubtitles        TaskKind = "SUBTITLES"
	KindAudioDescription TaskKind = "AUDIODESCRIPTION"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusError     TaskStatus = "ERROR"
)

// Terminal reports whether the status admits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusError
}

// CanTransition enforces the forward-only task state machine:
// PENDING -> RUNNING -> COMPLETED | ERROR.
func (s TaskStatus) CanTransition(to TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return to == TaskStatusRunning || to == TaskStatusError
	case TaskStatusRunning:
		return to == TaskStatusCompleted || to == TaskStatusError
	default:
		return false
	}
}

// TaskStep is the coarse progress indicator exposed to pollers.
type TaskStep string

const (
	StepFetchInput       TaskStep = "fetch_input"
	StepStoreSource      TaskStep = "store_source"
	StepDetectScenes     TaskStep = "detect_scenes"
	StepGenerateText     TaskStep = "generate_description"
	StepSynthesizeSpeech TaskStep = "synthesize_speech"
	StepTranscribe       TaskStep = "transcribe"
	StepFormatSubtitles  TaskStep = "format_subtitles"
	StepStoreArtifact    TaskStep = "store_artifact"
)

type Task struct {
	TaskID       string     `json:"task_id" db:"task_id" redis:"task_id" validate:"required"`
	Kind         TaskKind   `json:"kind" db:"kind" redis:"kind" validate:"required,oneof=SUBTITLES AUDIODESCRIPTION"`
	Status       TaskStatus `json:"status" db:"status" redis:"status" validate:"required"`
	Step         TaskStep   `json:"step,omitempty" db:"step" redis:"step" validate:"omitempty"`
	VideoID      string     `json:"video_id" db:"video_id" redis:"video_id" validate:"omitempty"`
	InputURL     string     `json:"input_url,omitempty" db:"input_url" redis:"input_url" validate:"omitempty,url"`
	InputKey     string     `json:"input_key,omitempty" db:"input_key" redis:"input_key" validate:"omitempty"`
	Language     string     `json:"language,omitempty" db:"language" redis:"language" validate:"omitempty"`
	Voice        string     `json:"voice,omitempty" db:"voice" redis:"voice" validate:"omitempty"`
	OutputRefs   []string   `json:"output_refs,omitempty" db:"output_refs" redis:"output_refs" validate:"omitempty"`
	ErrorMessage string     `json:"error_message,omitempty" db:"error_message" redis:"error_message" validate:"omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at" db:"submitted_at" redis:"submitted_at" validate:"omitempty"`
	StartedAt    time.Time  `json:"started_at,omitempty" db:"started_at" redis:"started_at" validate:"omitempty"`
	CompletedAt  time.Time  `json:"completed_at,omitempty" db:"completed_at" redis:"completed_at" validate:"omitempty"`
}

// InputRef returns whichever input reference the submitter provided.
func (t *Task) InputRef() string {
	if t.InputURL != "" {
		return t.InputURL
	}
	return t.InputKey
}

// NewTaskID builds a kind-prefixed identifier, e.g. SUBTITLES_1700000000000.
func NewTaskID(kind TaskKind, now time.Time) string {
	return fmt.Sprintf("%s_%d", kind, now.UnixMilli())
}

// ArtifactRef pairs a stored artifact URI with a short-lived URL the
// caller can download it from.
type ArtifactRef struct {
	URI         string `json:"uri"`
	DownloadURL string `json:"download_url,omitempty"`
}

// TaskResult is the result-fetch response for a COMPLETED task.
type TaskResult struct {
	TaskID    string        `json:"task_id"`
	Kind      TaskKind      `json:"kind"`
	Status    TaskStatus    `json:"status"`
	Artifacts []ArtifactRef `json:"artifacts"`
}

// TaskSubmitInput is the submit request payload. Exactly one of VideoURL
// or an uploaded file (recorded as InputKey by the handler) is required.
type TaskSubmitInput struct {
	VideoURL string   `json:"video_url" validate:"omitempty,url"`
	InputKey string   `json:"-" validate:"omitempty"`
	FileName string   `json:"file_name,omitempty" validate:"omitempty,lte=255"`
	Kind     TaskKind `json:"kind" validate:"required,oneof=SUBTITLES AUDIODESCRIPTION"`
	Language string   `json:"language,omitempty" validate:"omitempty,lte=5"`
	Voice    string   `json:"voice,omitempty" validate:"omitempty,lte=32"`
}
