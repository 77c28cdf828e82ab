package tasks

import "errors"

// Validation failures surfaced to the presentation layer. The collection never
// retries and never silently corrects input; on any of these the in-memory and
// persisted state are left unchanged.
var (
	ErrEmptyTask       = errors.New("task text is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidEffort   = errors.New("invalid effort")
	ErrInvalidDate     = errors.New("invalid target date")
	ErrNotFound        = errors.New("task not found")
)
