package service

import (
	"context"
	"sync"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

type mockRecordStore struct {
	TaskExistsFn     func(ctx context.Context, name string) (bool, error)
	ListTaskNamesFn  func(ctx context.Context) ([]string, error)
	GetTaskRecordsFn func(ctx context.Context, name string) ([]domain.ThreatRecord, error)
	InsertRecordsFn  func(ctx context.Context, records []domain.ThreatRecord) error
}

func (m *mockRecordStore) TaskExists(ctx context.Context, name string) (bool, error) {
	if m.TaskExistsFn != nil {
		return m.TaskExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockRecordStore) InsertRecords(ctx context.Context, records []domain.ThreatRecord) error {
	if m.InsertRecordsFn != nil {
		return m.InsertRecordsFn(ctx, records)
	}
	return nil
}

func (m *mockRecordStore) ListTaskNames(ctx context.Context) ([]string, error) {
	if m.ListTaskNamesFn != nil {
		return m.ListTaskNamesFn(ctx)
	}
	return []string{}, nil
}

func (m *mockRecordStore) GetTaskRecords(ctx context.Context, name string) ([]domain.ThreatRecord, error) {
	if m.GetTaskRecordsFn != nil {
		return m.GetTaskRecordsFn(ctx, name)
	}
	return []domain.ThreatRecord{}, nil
}

type submission struct {
	Name    string
	Filters domain.TaskFilterRequest
}

type mockRunner struct {
	mu        sync.Mutex
	submitted []submission
	statuses  map[string]domain.TaskStatus
}

func newMockRunner() *mockRunner {
	return &mockRunner{statuses: make(map[string]domain.TaskStatus)}
}

func (m *mockRunner) Submit(name string, filters domain.TaskFilterRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, submission{Name: name, Filters: filters})
	m.statuses[name] = domain.TaskStatusEnqueued
}

func (m *mockRunner) Status(name string) (domain.TaskStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[name]
	return s, ok
}

func (m *mockRunner) Submitted() []submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]submission(nil), m.submitted...)
}
