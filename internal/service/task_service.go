package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/phrazzld/threat-ingest/internal/store"
)

// TaskRunner accepts jobs for background execution and reports their status.
type TaskRunner interface {
	Submit(name string, filters domain.TaskFilterRequest)
	Status(name string) (domain.TaskStatus, bool)
}

// TaskService exposes the task submission and read operations.
type TaskService interface {
	// CreateTask validates the name, rejects names already present in the
	// store and enqueues the job. It returns as soon as the job is queued.
	CreateTask(ctx context.Context, name string, filters domain.TaskFilterRequest) error

	// ListTaskNames returns every task name with stored records.
	ListTaskNames(ctx context.Context) ([]string, error)

	// GetTaskRecords returns the stored records for name, or
	// domain.ErrTaskNotFound when there are none.
	GetTaskRecords(ctx context.Context, name string) ([]domain.ThreatRecord, error)

	// GetTaskStatus returns the in-memory status for name, or
	// domain.ErrTaskNotFound if it was never submitted to this process.
	GetTaskStatus(ctx context.Context, name string) (domain.TaskStatus, error)
}

type taskServiceImpl struct {
	records store.ThreatRecordStore
	runner  TaskRunner
	logger  *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(records store.ThreatRecordStore, runner TaskRunner, logger *slog.Logger) (TaskService, error) {
	if records == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "records cannot be nil"}
	}
	if runner == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "runner cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		records: records,
		runner:  runner,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, name string, filters domain.TaskFilterRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_name", name))

	if err := domain.ValidateTaskName(name); err != nil {
		return err
	}

	exists, err := s.records.TaskExists(ctx, name)
	if err != nil {
		log.Error("failed to check task existence", slog.String("error", err.Error()))
		return NewTaskServiceError("create_task", "failed to check task existence", err)
	}
	if exists {
		log.Info("rejected duplicate task")
		return fmt.Errorf("%w: %q", domain.ErrDuplicateTask, name)
	}

	s.runner.Submit(name, filters)
	log.Info("task submitted")
	return nil
}

func (s *taskServiceImpl) ListTaskNames(ctx context.Context) ([]string, error) {
	names, err := s.records.ListTaskNames(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list task names",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_task_names", "failed to list task names", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *taskServiceImpl) GetTaskRecords(ctx context.Context, name string) ([]domain.ThreatRecord, error) {
	records, err := s.records.GetTaskRecords(ctx, name)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task records",
			slog.String("task_name", name),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to get task records", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrTaskNotFound, name)
	}
	return records, nil
}

func (s *taskServiceImpl) GetTaskStatus(_ context.Context, name string) (domain.TaskStatus, error) {
	status, ok := s.runner.Status(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrTaskNotFound, name)
	}
	return status, nil
}
