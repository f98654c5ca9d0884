package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/catalog-api/internal/utils"
)

var startTime = time.Now()

// pinger is the connectivity probe for the document store.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	store pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// GetHealth responds with service and store status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "connected"
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "disconnected"
	}

	utils.JSON(c, 200, gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"mongo": gin.H{
			"status": storeStatus,
		},
	})
}
