package task

import (
	"errors"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// Errors reported to the worker's error handler.
var (
	ErrFetchFailed     = errors.New("provider fetch failed")
	ErrNormalizeFailed = errors.New("normalization failed")
	ErrJobPanicked     = errors.New("job panicked")
	ErrRunnerStarted   = errors.New("task runner already started")
)

// Job is one queued ingestion request. Filters are copied on submission and
// not modified afterwards.
type Job struct {
	Name    string
	Filters domain.TaskFilterRequest
}
