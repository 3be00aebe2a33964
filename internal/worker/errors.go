package worker

import (
	"fmt"

	"github.com/miresse/video-accessibility/internal/models"
)

// Kind classifies a step failure for the recorded error_message.
type Kind string

const (
	KindFetch    Kind = "fetch"
	KindStorage  Kind = "storage"
	KindExternal Kind = "external_service"
)

// StepError records which pipeline step failed and why. The worker
// never re-raises it to a caller; it becomes the task's error_message.
type StepError struct {
	Step models.TaskStep
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed at step %s: %v", e.Kind, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fetchError(step models.TaskStep, err error) *StepError {
	return &StepError{Step: step, Kind: KindFetch, Err: err}
}

func storageError(step models.TaskStep, err error) *StepError {
	return &StepError{Step: step, Kind: KindStorage, Err: err}
}

func externalError(step models.TaskStep, err error) *StepError {
	return &StepError{Step: step, Kind: KindExternal, Err: err}
}
