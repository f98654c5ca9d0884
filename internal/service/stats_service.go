package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/cache"
	"github.com/shopgrid/catalog-api/internal/repository"
)

// statsSource provides the aggregate counts behind the dashboard.
type statsSource interface {
	TotalProductCount(ctx context.Context) (int64, error)
	TotalCategoryCount(ctx context.Context) (int64, error)
}

// productCounter counts products by filter for the published/featured splits.
type productCounter interface {
	Count(ctx context.Context, f repository.ProductFilter) (int64, error)
}

// statsCache is the cache surface for dashboard counts.
type statsCache interface {
	Get(ctx context.Context) (*cache.StatsData, error)
	Set(ctx context.Context, data *cache.StatsData) error
}

// StatsService serves the dashboard aggregate counts with a short-lived
// cache in front of the store.
type StatsService struct {
	source   statsSource
	products productCounter
	cache    statsCache
}

// NewStatsService constructs a StatsService. cache may be nil.
func NewStatsService(source statsSource, products productCounter, c statsCache) *StatsService {
	return &StatsService{source: source, products: products, cache: c}
}

// Get returns the dashboard counts, served from cache when fresh.
func (s *StatsService) Get(ctx context.Context) (*cache.StatsData, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx); err == nil {
			return data, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the counts from the store and rewrites the cache,
// skipping any cached copy.
func (s *StatsService) Refresh(ctx context.Context) (*cache.StatsData, error) {
	data := &cache.StatsData{}
	var err error
	if data.TotalProducts, err = s.source.TotalProductCount(ctx); err != nil {
		return nil, err
	}
	if data.TotalCategories, err = s.source.TotalCategoryCount(ctx); err != nil {
		return nil, err
	}

	published, featured := true, true
	if data.PublishedProducts, err = s.products.Count(ctx, repository.ProductFilter{IsPublished: &published}); err != nil {
		return nil, err
	}
	if data.FeaturedProducts, err = s.products.Count(ctx, repository.ProductFilter{IsFeatured: &featured}); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, data); err != nil {
			log.Warn().Err(err).Msg("failed to cache stats")
		}
	}
	return data, nil
}
