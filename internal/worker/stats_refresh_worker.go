package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/cache"
)

// statsRefresher recomputes the dashboard counts and rewrites the cache.
type statsRefresher interface {
	Refresh(ctx context.Context) (*cache.StatsData, error)
}

// StatsRefreshWorker keeps the dashboard stats cache warm so the first
// request after a cache expiry does not pay the aggregation cost.
type StatsRefreshWorker struct {
	stats    statsRefresher
	interval time.Duration
}

// NewStatsRefreshWorker constructs a StatsRefreshWorker.
func NewStatsRefreshWorker(stats statsRefresher, interval time.Duration) *StatsRefreshWorker {
	return &StatsRefreshWorker{stats: stats, interval: interval}
}

// Start begins the periodic refresh loop until context is canceled.
func (w *StatsRefreshWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Msg("Starting stats refresh worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Stats refresh worker stopped")
			return
		}
	}
}

func (w *StatsRefreshWorker) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	data, err := w.stats.Refresh(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh stats cache")
		return
	}

	log.Debug().
		Int64("total_products", data.TotalProducts).
		Int64("total_categories", data.TotalCategories).
		Msg("Stats cache refreshed")
}
