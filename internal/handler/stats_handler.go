package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/catalog-api/internal/cache"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// StatsService is the use-case surface the stats endpoint dispatches to.
type StatsService interface {
	Get(ctx context.Context) (*cache.StatsData, error)
}

// StatsHandler serves the dashboard aggregate counts.
type StatsHandler struct {
	stats StatsService
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(stats StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	data, err := h.stats.Get(c.Request.Context())
	if err != nil {
		fail(c, err, "stats")
		return
	}
	utils.JSON(c, http.StatusOK, data)
}
