package services

import (
	"context"
	"sync"
	"time"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/observability"
	"go.uber.org/zap"
)

// JobRunner executes one sync job. Satisfied by ProductSyncService.
type JobRunner interface {
	RunJob(ctx context.Context, job SyncJob) error
}

// SyncQueue is an in-process FIFO with a single worker: at most one job
// executes at a time, jobs run in enqueue order, and Enqueue never blocks
// the caller. A failed job is logged and the worker moves on.
type SyncQueue struct {
	runner JobRunner
	logger *logging.SafeLogger

	mu   sync.Mutex
	jobs []SyncJob

	notify   chan struct{}
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewSyncQueue creates a stopped queue bound to its runner
func NewSyncQueue(runner JobRunner, logger *logging.SafeLogger) *SyncQueue {
	return &SyncQueue{
		runner:   runner,
		logger:   logger,
		notify:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Enqueue appends a job and returns immediately
func (q *SyncQueue) Enqueue(job SyncJob) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	depth := len(q.jobs)
	q.mu.Unlock()

	observability.SyncJobsEnqueued.WithLabelValues(string(job.Type)).Inc()
	observability.QueueDepth.Set(float64(depth))
	q.logger.Debug("job enqueued",
		zap.String("job_id", job.ID),
		zap.String("job_type", string(job.Type)),
		zap.Int("queue_depth", depth))

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Depth reports how many jobs are waiting
func (q *SyncQueue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Start launches the worker goroutine
func (q *SyncQueue) Start() {
	q.logger.Info("sync queue started")
	go q.work()
}

// Stop stops the worker after the current job finishes
func (q *SyncQueue) Stop() {
	close(q.stopChan)
	<-q.doneChan
	q.logger.Info("sync queue stopped")
}

func (q *SyncQueue) work() {
	defer close(q.doneChan)

	for {
		select {
		case <-q.stopChan:
			return
		case <-q.notify:
			q.drain()
		}
	}
}

// drain runs queued jobs one at a time until the queue is empty or the
// worker is stopped
func (q *SyncQueue) drain() {
	for {
		select {
		case <-q.stopChan:
			return
		default:
		}

		job, ok := q.pop()
		if !ok {
			return
		}
		q.runOne(job)
	}
}

func (q *SyncQueue) pop() (SyncJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return SyncJob{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	observability.QueueDepth.Set(float64(len(q.jobs)))
	return job, true
}

// runOne executes a single job, recording its result. Failures must never
// take down the worker or the process.
func (q *SyncQueue) runOne(job SyncJob) {
	start := time.Now()
	q.logger.Info("job started",
		zap.String("job_id", job.ID),
		zap.String("job_type", string(job.Type)),
		zap.Int("brand_id", job.BrandID),
		zap.Duration("queued_for", start.Sub(job.EnqueuedAt)))

	err := q.runner.RunJob(context.Background(), job)
	duration := time.Since(start)

	if err != nil {
		observability.SyncJobDuration.WithLabelValues(string(job.Type), "failed").Observe(duration.Seconds())
		q.logger.Error("job failed",
			zap.String("job_id", job.ID),
			zap.String("job_type", string(job.Type)),
			zap.Int("brand_id", job.BrandID),
			zap.Duration("duration", duration),
			zap.Error(err))
		return
	}

	observability.SyncJobDuration.WithLabelValues(string(job.Type), "ok").Observe(duration.Seconds())
	q.logger.Info("job complete",
		zap.String("job_id", job.ID),
		zap.String("job_type", string(job.Type)),
		zap.Duration("duration", duration))
}
