package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/utils"
)

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStore) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStore) List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, f)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockProductStore) Create(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductStore) Update(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryChecker struct {
	mock.Mock
}

func (m *MockCategoryChecker) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func validCreateRequest() *CreateProductRequest {
	return &CreateProductRequest{
		Name:       "Wireless Mouse",
		Price:      29.99,
		SKU:        "WM-001",
		CategoryID: "cat-1",
	}
}

func TestProductCreate(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	cats.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	store.On("GetBySKU", mock.Anything, "WM-001").Return(nil, utils.ErrNotFound)
	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	p, err := svc.Create(context.Background(), validCreateRequest(), "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Wireless Mouse", p.Name)
	assert.Equal(t, "admin@example.com", p.CreatedBy)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Nil(t, p.PublishedAt)
	store.AssertExpectations(t)
}

func TestProductCreatePublishedSetsTimestamp(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	cats.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	store.On("GetBySKU", mock.Anything, "WM-001").Return(nil, utils.ErrNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCreateRequest()
	req.IsPublished = true
	p, err := svc.Create(context.Background(), req, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	cats.On("Exists", mock.Anything, "cat-1").Return(false, nil)

	_, err := svc.Create(context.Background(), validCreateRequest(), "admin@example.com")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreateDuplicateSKU(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	cats.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	store.On("GetBySKU", mock.Anything, "WM-001").
		Return(&models.Product{ID: "other", SKU: "WM-001"}, nil)

	_, err := svc.Create(context.Background(), validCreateRequest(), "admin@example.com")
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestProductCreateInvalidatesStats(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	inv := new(MockInvalidator)
	svc := NewProductService(store, cats, inv)

	cats.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	store.On("GetBySKU", mock.Anything, "WM-001").Return(nil, utils.ErrNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	inv.On("Invalidate", mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), validCreateRequest(), "admin@example.com")
	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestProductUpdatePublishTransition(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	existing := &models.Product{
		ID:          "p-1",
		Name:        "Wireless Mouse",
		SKU:         "WM-001",
		CategoryID:  "cat-1",
		IsPublished: false,
		Version:     3,
	}
	store.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	req := &UpdateProductRequest{
		ID:          "p-1",
		Name:        "Wireless Mouse",
		SKU:         "WM-001",
		CategoryID:  "cat-1",
		IsPublished: true,
		Version:     3,
	}
	p, err := svc.Update(context.Background(), req, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, "admin@example.com", p.UpdatedBy)
}

func TestProductUpdateUnpublishClearsTimestamp(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	existing := &models.Product{
		ID:          "p-1",
		Name:        "Wireless Mouse",
		SKU:         "WM-001",
		CategoryID:  "cat-1",
		IsPublished: true,
	}
	store.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	req := &UpdateProductRequest{
		ID:         "p-1",
		Name:       "Wireless Mouse",
		SKU:        "WM-001",
		CategoryID: "cat-1",
	}
	p, err := svc.Update(context.Background(), req, "admin@example.com")
	require.NoError(t, err)
	assert.Nil(t, p.PublishedAt)
}

func TestProductUpdateSKUHeldByOther(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	existing := &models.Product{ID: "p-1", SKU: "WM-001", CategoryID: "cat-1"}
	store.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	store.On("GetBySKU", mock.Anything, "WM-002").
		Return(&models.Product{ID: "p-2", SKU: "WM-002"}, nil)

	req := &UpdateProductRequest{ID: "p-1", Name: "Mouse", SKU: "WM-002", CategoryID: "cat-1"}
	_, err := svc.Update(context.Background(), req, "admin@example.com")
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestProductUpdateVersionConflictPassesThrough(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	existing := &models.Product{ID: "p-1", SKU: "WM-001", CategoryID: "cat-1", Version: 2}
	store.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(utils.ErrVersionConflict)

	req := &UpdateProductRequest{ID: "p-1", Name: "Mouse", SKU: "WM-001", CategoryID: "cat-1", Version: 1}
	_, err := svc.Update(context.Background(), req, "admin@example.com")
	assert.ErrorIs(t, err, utils.ErrVersionConflict)
}

func TestProductDelete(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	inv := new(MockInvalidator)
	svc := NewProductService(store, cats, inv)

	store.On("Delete", mock.Anything, "p-1").Return(nil)
	inv.On("Invalidate", mock.Anything).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "p-1"))
	store.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestProductDeleteNotFound(t *testing.T) {
	store := new(MockProductStore)
	cats := new(MockCategoryChecker)
	svc := NewProductService(store, cats, nil)

	store.On("Delete", mock.Anything, "missing").Return(utils.ErrNotFound)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
