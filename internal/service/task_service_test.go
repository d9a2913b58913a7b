package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filters() domain.TaskFilterRequest {
	return domain.TaskFilterRequest{
		ProviderA: domain.ProviderFilter{YearFrom: 2020, YearTo: 2022, Countries: []string{"US"}},
		ProviderB: domain.ProviderFilter{YearFrom: 2020, YearTo: 2022, Countries: []string{"DE"}},
	}
}

func TestNewTaskService_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewTaskService(nil, newMockRunner(), nil)
	assert.Error(t, err)

	_, err = NewTaskService(&mockRecordStore{}, nil, nil)
	assert.Error(t, err)
}

func TestCreateTask_Enqueues(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	svc, err := NewTaskService(&mockRecordStore{}, runner, nil)
	require.NoError(t, err)

	require.NoError(t, svc.CreateTask(context.Background(), "alpha", filters()))

	submitted := runner.Submitted()
	require.Len(t, submitted, 1)
	assert.Equal(t, "alpha", submitted[0].Name)
	assert.Equal(t, filters(), submitted[0].Filters)

	status, err := svc.GetTaskStatus(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusEnqueued, status)
}

func TestCreateTask_DuplicateNotEnqueued(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	records := &mockRecordStore{TaskExistsFn: func(ctx context.Context, name string) (bool, error) {
		return name == "alpha", nil
	}}
	svc, err := NewTaskService(records, runner, nil)
	require.NoError(t, err)

	err = svc.CreateTask(context.Background(), "alpha", filters())
	assert.ErrorIs(t, err, domain.ErrDuplicateTask)
	assert.Empty(t, runner.Submitted())

	_, ok := runner.Status("alpha")
	assert.False(t, ok, "a rejected submission must not create a status entry")
}

func TestCreateTask_EmptyName(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	svc, err := NewTaskService(&mockRecordStore{}, runner, nil)
	require.NoError(t, err)

	err = svc.CreateTask(context.Background(), "", filters())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, runner.Submitted())
}

func TestCreateTask_StoreError(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	records := &mockRecordStore{TaskExistsFn: func(ctx context.Context, name string) (bool, error) {
		return false, errors.New("database is locked")
	}}
	svc, err := NewTaskService(records, runner, nil)
	require.NoError(t, err)

	err = svc.CreateTask(context.Background(), "alpha", filters())
	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_task", svcErr.Operation)
	assert.Empty(t, runner.Submitted())
}

func TestListTaskNames(t *testing.T) {
	t.Parallel()

	records := &mockRecordStore{ListTaskNamesFn: func(ctx context.Context) ([]string, error) {
		return nil, nil
	}}
	svc, err := NewTaskService(records, newMockRunner(), nil)
	require.NoError(t, err)

	names, err := svc.ListTaskNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	records.ListTaskNamesFn = func(ctx context.Context) ([]string, error) {
		return []string{"alpha", "beta"}, nil
	}
	names, err = svc.ListTaskNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestGetTaskRecords(t *testing.T) {
	t.Parallel()

	stored := []domain.ThreatRecord{{TaskName: "alpha", Country: "US", DiscoveryDate: "2021-03-04 10:00:00", Source: "a", RiskLevel: 3}}
	records := &mockRecordStore{GetTaskRecordsFn: func(ctx context.Context, name string) ([]domain.ThreatRecord, error) {
		if name == "alpha" {
			return stored, nil
		}
		return []domain.ThreatRecord{}, nil
	}}
	svc, err := NewTaskService(records, newMockRunner(), nil)
	require.NoError(t, err)

	got, err := svc.GetTaskRecords(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.GetTaskRecords(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestGetTaskStatus_Unknown(t *testing.T) {
	t.Parallel()

	svc, err := NewTaskService(&mockRecordStore{}, newMockRunner(), nil)
	require.NoError(t, err)

	_, err = svc.GetTaskStatus(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewTaskServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewTaskServiceError("op", "msg", nil))

	dup := errors.Join(domain.ErrDuplicateTask)
	assert.ErrorIs(t, NewTaskServiceError("op", "msg", dup), domain.ErrDuplicateTask)

	cause := errors.New("boom")
	err := NewTaskServiceError("get_task", "failed", cause)
	assert.Equal(t, "task service get_task failed: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
