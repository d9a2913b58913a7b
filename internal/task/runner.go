package task

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	Worker WorkerConfig
}

// Runner owns the queue, the status table and the single worker goroutine.
type Runner struct {
	queue      *Queue
	statuses   *StatusTable
	worker     *Worker
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewRunner creates a Runner whose worker fetches with fetcher and persists
// with writer. If logger is nil, the default logger is used.
func NewRunner(fetcher Fetcher, writer RecordWriter, config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	queue := NewQueue()
	statuses := NewStatusTable()
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:      queue,
		statuses:   statuses,
		worker:     NewWorker(queue, statuses, fetcher, writer, config.Worker, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.With(slog.String("component", "task_runner")),
	}
}

// SetErrorHandler sets the function called when a job is abandoned.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.worker.SetErrorHandler(handler)
}

// Submit records the job as enqueued and appends it to the queue. It never
// blocks on job execution.
func (r *Runner) Submit(name string, filters domain.TaskFilterRequest) {
	// Status first, so the worker can never observe a job without one.
	r.statuses.Set(name, domain.TaskStatusEnqueued)
	r.queue.Enqueue(Job{Name: name, Filters: filters.Clone()})

	r.logger.Debug("task enqueued",
		slog.String("task_name", name),
		slog.Int("queue_len", r.queue.Len()))
}

// Status returns the latest status recorded for name.
func (r *Runner) Status(name string) (domain.TaskStatus, bool) {
	return r.statuses.Get(name)
}

// Pending returns the number of jobs waiting to be picked up.
func (r *Runner) Pending() int {
	return r.queue.Len()
}

// Wait blocks until every submitted job has been processed, or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	return r.queue.Wait(ctx)
}

// Start launches the worker goroutine.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrRunnerStarted
	}
	r.started = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.worker.Run(r.ctx)
	}()

	r.logger.Info("task runner started")
	return nil
}

// Stop cancels the worker and waits for it to exit. Jobs still queued are
// dropped.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.logger.Info("task runner stopped",
		slog.Int("dropped_jobs", r.Pending()),
		slog.Any("unfinished_tasks", r.Unfinished()))
}

// Unfinished returns the names of tasks that have not reached a terminal
// status, sorted.
func (r *Runner) Unfinished() []string {
	names := make([]string, 0)
	for name, status := range r.statuses.Snapshot() {
		if !status.IsTerminal() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
