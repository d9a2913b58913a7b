package task

import (
	"sync"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// StatusTable maps task names to their latest status. Entries are never
// removed.
type StatusTable struct {
	mu       sync.RWMutex
	statuses map[string]domain.TaskStatus
}

// NewStatusTable creates an empty table.
func NewStatusTable() *StatusTable {
	return &StatusTable{statuses: make(map[string]domain.TaskStatus)}
}

// Set records status for name, replacing any previous value.
func (t *StatusTable) Set(name string, status domain.TaskStatus) {
	t.mu.Lock()
	t.statuses[name] = status
	t.mu.Unlock()
}

// Get returns the status recorded for name and whether one exists.
func (t *StatusTable) Get(name string) (domain.TaskStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	status, ok := t.statuses[name]
	return status, ok
}

// Snapshot returns a copy of the table.
func (t *StatusTable) Snapshot() map[string]domain.TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.TaskStatus, len(t.statuses))
	for name, status := range t.statuses {
		out[name] = status
	}
	return out
}
