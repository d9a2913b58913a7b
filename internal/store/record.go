package store

import (
	"context"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// ThreatRecordStore persists normalized threat records keyed loosely by
// task name. Uniqueness of task names is not enforced here; callers check
// TaskExists before submitting work.
type ThreatRecordStore interface {
	// TaskExists reports whether any record is stored under name.
	TaskExists(ctx context.Context, name string) (bool, error)

	// InsertRecords stores all records in one transaction. Either every
	// record is written or none is.
	InsertRecords(ctx context.Context, records []domain.ThreatRecord) error

	// ListTaskNames returns the distinct task names, ordered by name.
	ListTaskNames(ctx context.Context) ([]string, error)

	// GetTaskRecords returns the records stored under name in insertion
	// order. An empty result is not an error.
	GetTaskRecords(ctx context.Context, name string) ([]domain.ThreatRecord, error)
}
