package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner records executed jobs and tracks how many run concurrently
type recordingRunner struct {
	mu       sync.Mutex
	executed []SyncJob

	active    int32
	maxActive int32
	delay     time.Duration
	errFor    map[string]error

	done chan struct{}
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{
		errFor: make(map[string]error),
		done:   make(chan struct{}, 64),
	}
}

func (r *recordingRunner) RunJob(ctx context.Context, job SyncJob) error {
	active := atomic.AddInt32(&r.active, 1)
	defer atomic.AddInt32(&r.active, -1)

	for {
		max := atomic.LoadInt32(&r.maxActive)
		if active <= max || atomic.CompareAndSwapInt32(&r.maxActive, max, active) {
			break
		}
	}

	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	r.mu.Lock()
	r.executed = append(r.executed, job)
	err := r.errFor[job.ID]
	r.mu.Unlock()

	r.done <- struct{}{}
	return err
}

func (r *recordingRunner) executedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.executed))
	for _, job := range r.executed {
		ids = append(ids, job.ID)
	}
	return ids
}

func (r *recordingRunner) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for job %d of %d", i+1, n)
		}
	}
}

func TestSyncQueue_RunsJobsInOrder(t *testing.T) {
	runner := newRecordingRunner()
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()
	defer queue.Stop()

	queue.Enqueue(SyncJob{ID: "first", Type: JobUpdateInventory})
	queue.Enqueue(SyncJob{ID: "second", Type: JobUpdatePricing})
	queue.Enqueue(SyncJob{ID: "third", Type: JobRemoveStale})

	runner.waitFor(t, 3)
	assert.Equal(t, []string{"first", "second", "third"}, runner.executedIDs())
}

func TestSyncQueue_OneJobAtATime(t *testing.T) {
	runner := newRecordingRunner()
	runner.delay = 20 * time.Millisecond
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()
	defer queue.Stop()

	for i := 0; i < 8; i++ {
		queue.Enqueue(SyncJob{ID: string(rune('a' + i)), Type: JobUpdateInventory})
	}

	runner.waitFor(t, 8)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.maxActive))
}

func TestSyncQueue_EnqueueDoesNotBlock(t *testing.T) {
	runner := newRecordingRunner()
	runner.delay = 50 * time.Millisecond
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()
	defer queue.Stop()

	start := time.Now()
	for i := 0; i < 20; i++ {
		queue.Enqueue(SyncJob{ID: "job", Type: JobUpdateInventory})
	}
	elapsed := time.Since(start)

	// Enqueuing 20 jobs returns well before one 50ms job can finish
	assert.Less(t, elapsed, 50*time.Millisecond)

	runner.waitFor(t, 20)
}

func TestSyncQueue_FailedJobDoesNotStopWorker(t *testing.T) {
	runner := newRecordingRunner()
	runner.errFor["bad"] = errors.New("brand sync failed")
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()
	defer queue.Stop()

	queue.Enqueue(SyncJob{ID: "bad", Type: JobResyncProducts})
	queue.Enqueue(SyncJob{ID: "good", Type: JobUpdateInventory})

	runner.waitFor(t, 2)
	assert.Equal(t, []string{"bad", "good"}, runner.executedIDs())
}

func TestSyncQueue_DepthDrainsToZero(t *testing.T) {
	runner := newRecordingRunner()
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()
	defer queue.Stop()

	queue.Enqueue(SyncJob{ID: "only", Type: JobUpdateInventory})
	runner.waitFor(t, 1)

	require.Eventually(t, func() bool { return queue.Depth() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestSyncQueue_StopWaitsForWorker(t *testing.T) {
	runner := newRecordingRunner()
	queue := NewSyncQueue(runner, logging.NewNop())
	queue.Start()

	queue.Enqueue(SyncJob{ID: "only", Type: JobUpdateInventory})
	runner.waitFor(t, 1)

	done := make(chan struct{})
	go func() {
		queue.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
