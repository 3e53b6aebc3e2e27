package services

import (
	"time"
)

// SyncJobType names one scheduled unit of work
type SyncJobType string

// The four recurring job types.
const (
	JobUpdateInventory SyncJobType = "update-inventory"
	JobUpdatePricing   SyncJobType = "update-pricing"
	JobRemoveStale     SyncJobType = "remove-stale"
	JobResyncProducts  SyncJobType = "resync-products"
)

// AllJobTypes lists every job type in scheduling order
var AllJobTypes = []SyncJobType{
	JobUpdateInventory,
	JobUpdatePricing,
	JobRemoveStale,
	JobResyncProducts,
}

// Valid reports whether t is one of the known job types
func (t SyncJobType) Valid() bool {
	switch t {
	case JobUpdateInventory, JobUpdatePricing, JobRemoveStale, JobResyncProducts:
		return true
	}
	return false
}

// SyncJob is one enqueued unit of work. Created by the scheduler, consumed
// and discarded by the queue worker.
type SyncJob struct {
	ID         string      `json:"id"`
	Type       SyncJobType `json:"type"`
	BrandID    int         `json:"brand_id"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
}

// SyncResult records the outcome of one executed job
type SyncResult struct {
	JobID    string        `json:"job_id"`
	Type     SyncJobType   `json:"type"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}
