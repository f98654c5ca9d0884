package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/catalog-api/internal/cache"
	"github.com/shopgrid/catalog-api/internal/repository"
)

type MockStatsSource struct {
	mock.Mock
}

func (m *MockStatsSource) TotalProductCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsSource) TotalCategoryCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductCounter struct {
	mock.Mock
}

func (m *MockProductCounter) Count(ctx context.Context, f repository.ProductFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context) (*cache.StatsData, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.(*cache.StatsData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, data *cache.StatsData) error {
	return m.Called(ctx, data).Error(0)
}

func TestStatsGetComputesCounts(t *testing.T) {
	source := new(MockStatsSource)
	counter := new(MockProductCounter)
	svc := NewStatsService(source, counter, nil)

	source.On("TotalProductCount", mock.Anything).Return(int64(120), nil)
	source.On("TotalCategoryCount", mock.Anything).Return(int64(8), nil)
	counter.On("Count", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.IsPublished != nil && *f.IsPublished
	})).Return(int64(90), nil)
	counter.On("Count", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.IsFeatured != nil && *f.IsFeatured
	})).Return(int64(12), nil)

	data, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), data.TotalProducts)
	assert.Equal(t, int64(8), data.TotalCategories)
	assert.Equal(t, int64(90), data.PublishedProducts)
	assert.Equal(t, int64(12), data.FeaturedProducts)
}

func TestStatsGetServesFromCache(t *testing.T) {
	source := new(MockStatsSource)
	counter := new(MockProductCounter)
	c := new(MockStatsCache)
	svc := NewStatsService(source, counter, c)

	cached := &cache.StatsData{TotalProducts: 5, CachedAt: time.Now()}
	c.On("Get", mock.Anything).Return(cached, nil)

	data, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, data)
	source.AssertNotCalled(t, "TotalProductCount", mock.Anything)
}

func TestStatsGetFallsThroughOnCacheMiss(t *testing.T) {
	source := new(MockStatsSource)
	counter := new(MockProductCounter)
	c := new(MockStatsCache)
	svc := NewStatsService(source, counter, c)

	c.On("Get", mock.Anything).Return(nil, fmt.Errorf("cache miss"))
	c.On("Set", mock.Anything, mock.Anything).Return(nil)
	source.On("TotalProductCount", mock.Anything).Return(int64(3), nil)
	source.On("TotalCategoryCount", mock.Anything).Return(int64(1), nil)
	counter.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	data, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), data.TotalProducts)
	c.AssertCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestStatsRefreshSkipsCachedCopy(t *testing.T) {
	source := new(MockStatsSource)
	counter := new(MockProductCounter)
	c := new(MockStatsCache)
	svc := NewStatsService(source, counter, c)

	c.On("Set", mock.Anything, mock.Anything).Return(nil)
	source.On("TotalProductCount", mock.Anything).Return(int64(7), nil)
	source.On("TotalCategoryCount", mock.Anything).Return(int64(2), nil)
	counter.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	data, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.TotalProducts)
	c.AssertNotCalled(t, "Get", mock.Anything)
}
