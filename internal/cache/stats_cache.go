package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	statsKey = "catalog:stats"
	statsTTL = 60 * time.Second
)

// StatsData holds the dashboard aggregate counts.
type StatsData struct {
	TotalProducts     int64     `json:"totalProducts"`
	TotalCategories   int64     `json:"totalCategories"`
	PublishedProducts int64     `json:"publishedProducts"`
	FeaturedProducts  int64     `json:"featuredProducts"`
	CachedAt          time.Time `json:"cachedAt"`
}

// StatsCache caches dashboard counts with a short TTL. Writers invalidate it
// so the dashboard never lags a mutation by more than one read.
type StatsCache struct {
	redis *RedisClient
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(redis *RedisClient) *StatsCache {
	return &StatsCache{redis: redis}
}

// Get returns the cached stats, or an error on a miss.
func (c *StatsCache) Get(ctx context.Context) (*StatsData, error) {
	raw, err := c.redis.Get(ctx, statsKey)
	if err != nil {
		return nil, err
	}
	var data StatsData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &data, nil
}

// Set stores the stats with the cache TTL.
func (c *StatsCache) Set(ctx context.Context, data *StatsData) error {
	data.CachedAt = time.Now().UTC()
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return c.redis.Set(ctx, statsKey, string(raw), statsTTL)
}

// Invalidate drops the cached stats.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, statsKey)
}
