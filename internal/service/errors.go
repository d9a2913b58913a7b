package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// TaskServiceError wraps unexpected failures from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError wraps err unless it is one of the domain sentinels
// callers are expected to branch on, which are returned unchanged.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		domain.ErrDuplicateTask,
		domain.ErrTaskNotFound,
		domain.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
