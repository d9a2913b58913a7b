package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/phrazzld/threat-ingest/internal/store"
)

// RecordStore implements store.ThreatRecordStore over database/sql.
// Backed by a *sql.DB, each insert batch runs in its own transaction; backed
// by a *sql.Tx, statements join the caller's transaction.
type RecordStore struct {
	db     store.DBTX
	driver string
	logger *slog.Logger
}

// NewRecordStore creates a RecordStore for a connection opened with driver.
// If logger is nil, the default logger is used.
func NewRecordStore(db store.DBTX, driver string, logger *slog.Logger) *RecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RecordStore{
		db:     db,
		driver: driver,
		logger: logger.With(slog.String("component", "record_store")),
	}
}

var _ store.ThreatRecordStore = (*RecordStore)(nil)

func (s *RecordStore) q(query string) string {
	return rebind(s.driver, query)
}

// TaskExists implements store.ThreatRecordStore.TaskExists.
func (s *RecordStore) TaskExists(ctx context.Context, name string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT EXISTS (SELECT 1 FROM threat_records WHERE task_name = ?)`),
		name,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("task_name", name),
			slog.String("error", err.Error()))
		return false, store.NewStoreError("threat_record", "exists", "failed to check task", MapError(err))
	}

	return exists, nil
}

// InsertRecords implements store.ThreatRecordStore.InsertRecords.
// An empty batch is a no-op.
func (s *RecordStore) InsertRecords(ctx context.Context, records []domain.ThreatRecord) error {
	if len(records) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return s.insertAll(ctx, tx, records)
		})
	} else {
		err = s.insertAll(ctx, s.db, records)
	}
	if err != nil {
		log.Error("failed to insert threat records",
			slog.Int("count", len(records)),
			slog.String("error", err.Error()))
		return store.NewStoreError("threat_record", "insert", "failed to insert records", err)
	}

	log.Debug("inserted threat records", slog.Int("count", len(records)))
	return nil
}

func (s *RecordStore) insertAll(ctx context.Context, q store.DBTX, records []domain.ThreatRecord) error {
	stmt, err := q.PrepareContext(ctx, s.q(`
		INSERT INTO threat_records (task_name, country, discovery_date, source, risk_level)
		VALUES (?, ?, ?, ?, ?)
	`))
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.TaskName,
			r.Country,
			r.DiscoveryDate,
			r.Source,
			r.RiskLevel,
		); err != nil {
			return fmt.Errorf("record %d: %w", i, MapError(err))
		}
	}
	return nil
}

// ListTaskNames implements store.ThreatRecordStore.ListTaskNames.
func (s *RecordStore) ListTaskNames(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT task_name FROM threat_records ORDER BY task_name`)
	if err != nil {
		log.Error("failed to list task names", slog.String("error", err.Error()))
		return nil, store.NewStoreError("threat_record", "query", "failed to list task names", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, store.NewStoreError("threat_record", "scan", "failed to read task name", MapError(err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("threat_record", "query", "failed to iterate task names", MapError(err))
	}

	return names, nil
}

// GetTaskRecords implements store.ThreatRecordStore.GetTaskRecords.
func (s *RecordStore) GetTaskRecords(ctx context.Context, name string) ([]domain.ThreatRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT task_name, country, discovery_date, source, risk_level
		FROM threat_records
		WHERE task_name = ?
		ORDER BY id
	`), name)
	if err != nil {
		log.Error("failed to query task records",
			slog.String("task_name", name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("threat_record", "query", "failed to get task records", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	records := make([]domain.ThreatRecord, 0)
	for rows.Next() {
		var r domain.ThreatRecord
		if err := rows.Scan(&r.TaskName, &r.Country, &r.DiscoveryDate, &r.Source, &r.RiskLevel); err != nil {
			return nil, store.NewStoreError("threat_record", "scan", "failed to read task record", MapError(err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("threat_record", "query", "failed to iterate task records", MapError(err))
	}

	return records, nil
}
