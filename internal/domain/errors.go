package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskName is returned when a task is submitted without a name.
	ErrEmptyTaskName = errors.New("task name cannot be empty")

	// ErrDuplicateTask is returned at submission when the task name already
	// has records in the store.
	ErrDuplicateTask = errors.New("task already exists")

	// ErrTaskNotFound is returned when a task has no stored records or no
	// known status.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidDate is returned when a provider timestamp cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)
