package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/service"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// CategoryService is the use-case surface the category endpoints dispatch to.
type CategoryService interface {
	Create(ctx context.Context, req *service.CreateCategoryRequest, actor string) (*models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, f repository.CategoryFilter) ([]models.Category, int64, error)
	Tree(ctx context.Context) ([]*models.CategoryNode, error)
	Update(ctx context.Context, req *service.UpdateCategoryRequest, actor string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryHandler handles category HTTP endpoints.
type CategoryHandler struct {
	categories CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	f := repository.CategoryFilter{
		Search: c.Query("searchTerm"),
	}
	f.Page, f.Limit = repository.NormalizePage(
		queryInt(c, "pageNumber", 1), queryInt(c, "pageSize", repository.DefaultPageSize))
	if v, ok := c.GetQuery("parentId"); ok {
		f.ParentID = &v
	}

	items, total, err := h.categories.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err, "list categories")
		return
	}
	utils.JSON(c, http.StatusOK, utils.NewPage(items, total, f.Page, f.Limit))
}

// Tree handles GET /api/categories/tree.
func (h *CategoryHandler) Tree(c *gin.Context) {
	roots, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		fail(c, err, "category tree")
		return
	}
	utils.JSON(c, http.StatusOK, roots)
}

// Get handles GET /api/categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "get category")
		return
	}
	utils.JSON(c, http.StatusOK, cat)
}

// GetBySlug handles GET /api/categories/slug/:slug.
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "get category by slug")
		return
	}
	utils.JSON(c, http.StatusOK, cat)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "create category")
		return
	}
	c.Header("Location", "/api/categories/"+cat.ID)
	utils.JSON(c, http.StatusCreated, cat)
}

// Update handles PUT /api/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ID != c.Param("id") {
		utils.Error(c, http.StatusBadRequest, "Route id does not match body id")
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "update category")
		return
	}
	utils.JSON(c, http.StatusOK, cat)
}

// Delete handles DELETE /api/categories/:id. Categories still referenced by
// products are rejected.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
