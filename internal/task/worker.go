package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/phrazzld/threat-ingest/internal/filter"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
)

// Fetcher retrieves the raw feeds of both providers.
type Fetcher interface {
	FetchProviderA(ctx context.Context) ([]domain.ProviderARecord, error)
	FetchProviderB(ctx context.Context) ([]domain.ProviderBRecord, error)
}

// RecordWriter persists normalized records.
type RecordWriter interface {
	InsertRecords(ctx context.Context, records []domain.ThreatRecord) error
}

// WorkerConfig holds the optional pauses around job execution.
type WorkerConfig struct {
	// SettleDelay is slept between the pending and in_progress transitions.
	SettleDelay time.Duration

	// CompletionDelay is slept between persisting records and marking the
	// job completed.
	CompletionDelay time.Duration
}

// Worker drains a Queue one job at a time.
type Worker struct {
	queue    *Queue
	statuses *StatusTable
	fetcher  Fetcher
	writer   RecordWriter
	config   WorkerConfig
	logger   *slog.Logger

	// errorHandler is called when a job is abandoned or panics.
	errorHandler func(job Job, err error)
}

// NewWorker creates a worker. If logger is nil, the default logger is used.
func NewWorker(
	queue *Queue,
	statuses *StatusTable,
	fetcher Fetcher,
	writer RecordWriter,
	config WorkerConfig,
	logger *slog.Logger,
) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "task_worker"))

	return &Worker{
		queue:    queue,
		statuses: statuses,
		fetcher:  fetcher,
		writer:   writer,
		config:   config,
		logger:   logger,
		errorHandler: func(job Job, err error) {
			logger.Error("task execution failed",
				slog.String("task_name", job.Name),
				slog.String("error", err.Error()))
		},
	}
}

// SetErrorHandler replaces the handler called for abandoned jobs.
func (w *Worker) SetErrorHandler(handler func(job Job, err error)) {
	if handler != nil {
		w.errorHandler = handler
	}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Debug("starting worker")

	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			w.logger.Debug("stopping worker", slog.String("reason", err.Error()))
			return
		}
		w.process(ctx, job)
	}
}

// process runs a single job. The queue is acknowledged exactly once, even
// when execution panics.
func (w *Worker) process(ctx context.Context, job Job) {
	log := w.logger.With(
		slog.String("task_name", job.Name),
		slog.String("run_id", uuid.New().String()),
	)
	start := time.Now()

	defer w.queue.Done()
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("%w: %v", ErrJobPanicked, p)
			log.Error("recovered from panic while processing task", slog.Any("panic", p))
			w.errorHandler(job, err)
		}
	}()

	ctx = logger.WithLogger(ctx, log)
	if err := w.execute(ctx, job, log); err != nil {
		w.errorHandler(job, err)
	}

	log.Info("task done", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
}

func (w *Worker) execute(ctx context.Context, job Job, log *slog.Logger) error {
	w.setStatus(job.Name, domain.TaskStatusPending, log)

	if err := sleep(ctx, w.config.SettleDelay); err != nil {
		return err
	}

	w.setStatus(job.Name, domain.TaskStatusInProgress, log)

	rawA, rawB, err := w.fetch(ctx)
	if err != nil {
		log.Error("failed to fetch provider data", slog.String("error", err.Error()))
		return err
	}
	log.Debug("fetched provider data",
		slog.Int("provider_a_count", len(rawA)),
		slog.Int("provider_b_count", len(rawB)))

	records, err := filter.Normalize(rawA, rawB, job.Filters, job.Name)
	if err != nil {
		log.Error("failed to normalize provider data", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrNormalizeFailed, err)
	}

	if err := w.writer.InsertRecords(ctx, records); err != nil {
		// The job still completes; the records are lost.
		log.Error("failed to persist task records",
			slog.Int("count", len(records)),
			slog.String("error", err.Error()))
	} else {
		log.Info("persisted task records", slog.Int("count", len(records)))
	}

	if err := sleep(ctx, w.config.CompletionDelay); err != nil {
		log.Debug("completion delay interrupted", slog.String("reason", err.Error()))
	}

	w.setStatus(job.Name, domain.TaskStatusCompleted, log)
	return nil
}

func (w *Worker) fetch(ctx context.Context) ([]domain.ProviderARecord, []domain.ProviderBRecord, error) {
	var (
		rawA []domain.ProviderARecord
		rawB []domain.ProviderBRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(recoverFetch("A", func() error {
		records, err := w.fetcher.FetchProviderA(gctx)
		if err != nil {
			return fmt.Errorf("%w: provider A: %w", ErrFetchFailed, err)
		}
		rawA = records
		return nil
	}))
	g.Go(recoverFetch("B", func() error {
		records, err := w.fetcher.FetchProviderB(gctx)
		if err != nil {
			return fmt.Errorf("%w: provider B: %w", ErrFetchFailed, err)
		}
		rawB = records
		return nil
	}))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rawA, rawB, nil
}

// recoverFetch turns a panic in a fetch goroutine into an error. The
// recover in process only covers the worker goroutine itself.
func recoverFetch(provider string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%w: provider %s: %v", ErrJobPanicked, provider, p)
			}
		}()
		return fn()
	}
}

// setStatus records status for name. A backwards move is still applied but
// logged: it only happens when a name is resubmitted while its previous run
// is in flight.
func (w *Worker) setStatus(name string, status domain.TaskStatus, log *slog.Logger) {
	prev, ok := w.statuses.Get(name)
	w.statuses.Set(name, status)

	if ok && status.Rank() < prev.Rank() {
		log.Warn("task status moved backwards",
			slog.String("from", string(prev)),
			slog.String("status", string(status)))
		return
	}
	log.Info("task status changed", slog.String("status", string(status)))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
