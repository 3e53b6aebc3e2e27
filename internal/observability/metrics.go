package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncJobsEnqueued tracks jobs pushed onto the queue
	SyncJobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "t14_sync_jobs_enqueued_total",
			Help: "Number of sync jobs enqueued",
		},
		[]string{"type"},
	)

	// SyncJobDuration tracks job execution duration
	SyncJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "t14_sync_job_duration_seconds",
			Help: "Duration of sync job execution in seconds",
		},
		[]string{"type", "status"},
	)

	// BatchPushes tracks batch product pushes to the store
	BatchPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "t14_sync_batch_pushes_total",
			Help: "Number of product batches pushed to the store",
		},
		[]string{"status"},
	)

	// CategoryCacheLookups tracks reference cache hits/misses
	CategoryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "t14_sync_reference_cache_lookups_total",
			Help: "Number of reference cache lookups",
		},
		[]string{"kind", "result"},
	)

	// Turn14Requests tracks vendor API calls
	Turn14Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "t14_sync_turn14_requests_total",
			Help: "Number of Turn14 API requests",
		},
		[]string{"operation", "status"},
	)

	// QueueDepth tracks the number of jobs waiting in the queue
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "t14_sync_queue_depth",
			Help: "Number of sync jobs waiting in the queue",
		},
	)
)
