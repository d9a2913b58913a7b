package domain

// TaskStatus represents the lifecycle state of a task.
// A task only ever moves forward through these states.
type TaskStatus string

// Possible task status values, in lifecycle order.
const (
	TaskStatusEnqueued   TaskStatus = "enqueued"
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Rank returns the position of s in the lifecycle, or -1 for unknown values.
func (s TaskStatus) Rank() int {
	switch s {
	case TaskStatusEnqueued:
		return 0
	case TaskStatusPending:
		return 1
	case TaskStatusInProgress:
		return 2
	case TaskStatusCompleted:
		return 3
	default:
		return -1
	}
}

// IsTerminal reports whether no further transitions follow s.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted
}
