// Package task queues ingestion jobs and executes them in the background.
// A Runner owns an unbounded FIFO Queue, a StatusTable that HTTP handlers
// poll, and a single Worker goroutine that drains the queue one job at a
// time. Submission never blocks on job execution.
package task
