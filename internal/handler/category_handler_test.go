package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/service"
	"github.com/shopgrid/catalog-api/internal/utils"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, req *service.CreateCategoryRequest, actor string) (*models.Category, error) {
	args := m.Called(ctx, req, actor)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, f repository.CategoryFilter) ([]models.Category, int64, error) {
	args := m.Called(ctx, f)
	if c := args.Get(0); c != nil {
		return c.([]models.Category), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockCategoryService) Tree(ctx context.Context) ([]*models.CategoryNode, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*models.CategoryNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, req *service.UpdateCategoryRequest, actor string) (*models.Category, error) {
	args := m.Called(ctx, req, actor)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setupCategoryRouter(svc CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCategoryHandler(svc)
	r := gin.New()
	r.GET("/api/categories", h.List)
	r.GET("/api/categories/tree", h.Tree)
	r.GET("/api/categories/slug/:slug", h.GetBySlug)
	r.POST("/api/categories", h.Create)
	r.GET("/api/categories/:id", h.Get)
	r.PUT("/api/categories/:id", h.Update)
	r.DELETE("/api/categories/:id", h.Delete)
	return r
}

func TestCategoryListRootsOnly(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f repository.CategoryFilter) bool {
		return f.ParentID != nil && *f.ParentID == ""
	})).Return([]models.Category{{ID: "root"}}, int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories?parentId=", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryTree(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("Tree", mock.Anything).Return([]*models.CategoryNode{
		{
			Category: models.Category{ID: "root", Name: "Electronics"},
			Children: []*models.CategoryNode{
				{Category: models.Category{ID: "child"}, Children: []*models.CategoryNode{}},
			},
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories/tree", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var roots []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roots))
	require.Len(t, roots, 1)
	children, ok := roots[0]["children"].([]interface{})
	require.True(t, ok)
	assert.Len(t, children, 1)
}

func TestCategoryGetBySlug(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("GetBySlug", mock.Anything, "home-garden").
		Return(&models.Category{ID: "cat-1", Slug: "home-garden"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories/slug/home-garden", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryCreate(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Category{ID: "cat-1", Slug: "patio"}, nil)

	raw, _ := json.Marshal(map[string]interface{}{"name": "Patio"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/categories/cat-1", w.Header().Get("Location"))
}

func TestCategoryDeleteInUse(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("Delete", mock.Anything, "cat-1").Return(utils.ErrCategoryInUse)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/cat-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryUpdateCycleRejected(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("Update", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, utils.ErrCategoryCycle)

	raw, _ := json.Marshal(map[string]interface{}{
		"id":       "cat-1",
		"name":     "Patio",
		"parentId": "cat-2",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/categories/cat-1", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
