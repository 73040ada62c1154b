package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/sse"
	"github.com/LarozaLighting/laroza_api/internal/store"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store store.Store
	hub   *sse.Hub
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st store.Store, hub *sse.Hub) *HealthHandler {
	return &HealthHandler{store: st, hub: hub}
}

// GetHealth responds with service and backing store status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	storeStatus := "connected"
	if _, _, err := h.store.Get(c.Request.Context(), store.KeyProducts); err != nil {
		storeStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"store": gin.H{
			"status": storeStatus,
		},
		"sseClients": h.hub.ClientCount(),
	})
}
