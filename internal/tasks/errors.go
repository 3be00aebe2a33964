package tasks

import "github.com/pkg/errors"

var (
	// ErrTaskNotFound is returned for status or result lookups of a
	// task_id that was never submitted.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidInput is returned when a submission fails validation
	// before any task record is created.
	ErrInvalidInput = errors.New("invalid submission input")

	// ErrQueueUnavailable is returned when the queue backend cannot be
	// reached. There is no local fallback; the caller must retry.
	ErrQueueUnavailable = errors.New("task queue unavailable")

	// ErrResultNotReady is returned when results are fetched before the
	// task reached COMPLETED.
	ErrResultNotReady = errors.New("task result not ready")
)
