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

// ProductService is the use-case surface the product endpoints dispatch to.
type ProductService interface {
	Create(ctx context.Context, req *service.CreateProductRequest, actor string) (*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error)
	Update(ctx context.Context, req *service.UpdateProductRequest, actor string) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler handles product HTTP endpoints.
type ProductHandler struct {
	products ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	f := repository.ProductFilter{
		Search:      c.Query("searchTerm"),
		CategoryID:  c.Query("categoryId"),
		MinPrice:    queryFloatPtr(c, "minPrice"),
		MaxPrice:    queryFloatPtr(c, "maxPrice"),
		IsPublished: queryBoolPtr(c, "isPublished"),
		IsFeatured:  queryBoolPtr(c, "isFeatured"),
		SortBy:      c.Query("sortBy"),
		SortDesc:    c.Query("sortOrder") == "desc",
	}
	f.Page, f.Limit = repository.NormalizePage(
		queryInt(c, "pageNumber", 1), queryInt(c, "pageSize", repository.DefaultPageSize))

	items, total, err := h.products.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err, "list products")
		return
	}
	utils.JSON(c, http.StatusOK, utils.NewPage(items, total, f.Page, f.Limit))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "get product")
		return
	}
	utils.JSON(c, http.StatusOK, p)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "create product")
		return
	}
	c.Header("Location", "/api/products/"+p.ID)
	utils.JSON(c, http.StatusCreated, p)
}

// Update handles PUT /api/products/:id. A body id that disagrees with the
// route is rejected before any dispatch.
func (h *ProductHandler) Update(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ID != c.Param("id") {
		utils.Error(c, http.StatusBadRequest, "Route id does not match body id")
		return
	}

	p, err := h.products.Update(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "update product")
		return
	}
	utils.JSON(c, http.StatusOK, p)
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "delete product")
		return
	}
	c.Status(http.StatusNoContent)
}
