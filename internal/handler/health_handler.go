package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lapiazza/storefront_api/internal/cache"
	"github.com/lapiazza/storefront_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store   cache.Store
	backend string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store cache.Store, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

// GetHealth responds with service and storage backend status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	storageStatus := "connected"
	if err := h.store.Ping(c.Request.Context()); err != nil {
		storageStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"storage": gin.H{
			"backend": h.backend,
			"status":  storageStatus,
		},
	})
}
