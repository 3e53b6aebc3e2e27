package services

import (
	"sync"
	"time"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/utils"
	"go.uber.org/zap"
)

// Enqueuer accepts jobs without blocking. Satisfied by SyncQueue.
type Enqueuer interface {
	Enqueue(job SyncJob)
}

// Schedule pairs a job type with its firing period
type Schedule struct {
	Type   SyncJobType
	Period time.Duration
}

// SyncScheduler owns one named timer per job type. Each timer enqueues a job
// immediately at start and then once per period, rearming regardless of
// whether earlier jobs have finished, so execution can lag behind schedule
// under load but the enqueue rate stays constant.
type SyncScheduler struct {
	queue     Enqueuer
	clock     Clock
	brandID   int
	schedules []Schedule
	logger    *logging.SafeLogger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSyncScheduler creates a scheduler for the given schedules
func NewSyncScheduler(queue Enqueuer, clock Clock, brandID int, schedules []Schedule, logger *logging.SafeLogger) *SyncScheduler {
	return &SyncScheduler{
		queue:     queue,
		clock:     clock,
		brandID:   brandID,
		schedules: schedules,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// DefaultSchedules builds the four recurring schedules from configured periods
func DefaultSchedules(inventory, pricing, stale, resync time.Duration) []Schedule {
	return []Schedule{
		{Type: JobUpdateInventory, Period: inventory},
		{Type: JobUpdatePricing, Period: pricing},
		{Type: JobRemoveStale, Period: stale},
		{Type: JobResyncProducts, Period: resync},
	}
}

// Start arms every timer. Each enqueues one job before its first period
// elapses.
func (s *SyncScheduler) Start() {
	for _, schedule := range s.schedules {
		s.logger.Info("scheduling job",
			zap.String("job_type", string(schedule.Type)),
			zap.Duration("period", schedule.Period))

		s.enqueue(schedule.Type)

		s.wg.Add(1)
		go s.runTimer(schedule)
	}
}

// Stop disarms all timers. Jobs already enqueued stay queued.
func (s *SyncScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *SyncScheduler) runTimer(schedule Schedule) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		case <-s.clock.After(schedule.Period):
			s.enqueue(schedule.Type)
		}
	}
}

func (s *SyncScheduler) enqueue(jobType SyncJobType) {
	s.queue.Enqueue(SyncJob{
		ID:         utils.GenerateUUID(),
		Type:       jobType,
		BrandID:    s.brandID,
		EnqueuedAt: s.clock.Now(),
	})
}
