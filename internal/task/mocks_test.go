package task

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// mockFetcher returns canned provider data. The optional Fn fields
// override the canned responses.
type mockFetcher struct {
	A      []domain.ProviderARecord
	B      []domain.ProviderBRecord
	FetchA func(ctx context.Context) ([]domain.ProviderARecord, error)
	FetchB func(ctx context.Context) ([]domain.ProviderBRecord, error)
}

func (m *mockFetcher) FetchProviderA(ctx context.Context) ([]domain.ProviderARecord, error) {
	if m.FetchA != nil {
		return m.FetchA(ctx)
	}
	return m.A, nil
}

func (m *mockFetcher) FetchProviderB(ctx context.Context) ([]domain.ProviderBRecord, error) {
	if m.FetchB != nil {
		return m.FetchB(ctx)
	}
	return m.B, nil
}

// mockWriter records every batch it receives.
type mockWriter struct {
	mu       sync.Mutex
	batches  [][]domain.ThreatRecord
	InsertFn func(ctx context.Context, records []domain.ThreatRecord) error
}

func (m *mockWriter) InsertRecords(ctx context.Context, records []domain.ThreatRecord) error {
	m.mu.Lock()
	m.batches = append(m.batches, records)
	m.mu.Unlock()

	if m.InsertFn != nil {
		return m.InsertFn(ctx, records)
	}
	return nil
}

func (m *mockWriter) Batches() [][]domain.ThreatRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]domain.ThreatRecord(nil), m.batches...)
}

func sampleFetcher() *mockFetcher {
	return &mockFetcher{
		A: []domain.ProviderARecord{
			{IPAddress: "1.1.1.1", ThreatLevel: 3, DateDetected: "2021-03-04 10:00:00", Country: "US", Source: "a1"},
			{IPAddress: "2.2.2.2", ThreatLevel: 1, DateDetected: "2019-01-01 00:00:00", Country: "US", Source: "a2"},
		},
		B: []domain.ProviderBRecord{
			{IPAddress: "3.3.3.3", Severity: 5, DetectionTime: "2022-07-01 12:30:00", Country: "DE", Source: "b1"},
		},
	}
}

func sampleFilters() domain.TaskFilterRequest {
	return domain.TaskFilterRequest{
		ProviderA: domain.ProviderFilter{YearFrom: 2020, YearTo: 2022, Countries: []string{"US"}},
		ProviderB: domain.ProviderFilter{YearFrom: 2020, YearTo: 2022, Countries: []string{"DE"}},
	}
}
