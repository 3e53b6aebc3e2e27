package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hallsamuel90/t14-wc-sync/internal/config"
	"github.com/hallsamuel90/t14-wc-sync/internal/services"
	"github.com/hallsamuel90/t14-wc-sync/internal/utils"
)

// SyncHandlers exposes the operational API over the queue
type SyncHandlers struct {
	queue *services.SyncQueue
}

// NewSyncHandlers creates handlers bound to the queue
func NewSyncHandlers(queue *services.SyncQueue) *SyncHandlers {
	return &SyncHandlers{queue: queue}
}

// HealthCheck reports service liveness
func (h *SyncHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// QueueStatus reports how many jobs are waiting
func (h *SyncHandlers) QueueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"depth": h.queue.Depth(),
	})
}

// TriggerSync enqueues one job of the requested type out of schedule
func (h *SyncHandlers) TriggerSync(c *gin.Context) {
	jobType := services.SyncJobType(c.Param("type"))
	if !jobType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown job type",
		})
		return
	}

	job := services.SyncJob{
		ID:         utils.GenerateUUID(),
		Type:       jobType,
		BrandID:    config.AppConfig.BrandID,
		EnqueuedAt: time.Now(),
	}
	h.queue.Enqueue(job)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"type":   string(jobType),
	})
}
