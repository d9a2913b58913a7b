package task

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO of jobs. Enqueue never blocks; Dequeue parks
// the caller on a channel until a job is available. Every dequeued job must
// be acknowledged with Done so that Wait can observe an idle queue.
type Queue struct {
	mu         sync.Mutex
	items      []Job
	ready      chan struct{}
	unfinished int
	idle       chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	idle := make(chan struct{})
	close(idle)

	return &Queue{
		ready: make(chan struct{}, 1),
		idle:  idle,
	}
}

// Enqueue appends job to the tail of the queue.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	q.items = append(q.items, job)
	q.unfinished++
	if q.unfinished == 1 {
		q.idle = make(chan struct{})
	}
	q.mu.Unlock()

	q.signal()
}

// Dequeue removes and returns the oldest job, blocking until one is
// available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (Job, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			job := q.items[0]
			q.items[0] = Job{}
			q.items = q.items[1:]
			remaining := len(q.items)
			q.mu.Unlock()

			if remaining > 0 {
				q.signal()
			}
			return job, nil
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			return Job{}, ctx.Err()
		}
	}
}

// Done marks one dequeued job as finished. Calling Done more times than
// jobs were enqueued panics.
func (q *Queue) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.unfinished <= 0 {
		panic("task: Queue.Done called more times than jobs were enqueued")
	}
	q.unfinished--
	if q.unfinished == 0 {
		close(q.idle)
	}
}

// Wait blocks until every enqueued job has been marked Done, or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of jobs waiting to be dequeued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
