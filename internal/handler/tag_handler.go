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

// TagService is the use-case surface the tag endpoints dispatch to.
type TagService interface {
	Create(ctx context.Context, req *service.CreateTagRequest, actor string) (*models.Tag, error)
	Get(ctx context.Context, id string) (*models.Tag, error)
	List(ctx context.Context, f repository.TagFilter) ([]models.Tag, int64, error)
	Update(ctx context.Context, req *service.UpdateTagRequest, actor string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
}

// TagHandler handles tag HTTP endpoints.
type TagHandler struct {
	tags TagService
}

// NewTagHandler constructs a TagHandler.
func NewTagHandler(tags TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List handles GET /api/tags.
func (h *TagHandler) List(c *gin.Context) {
	f := repository.TagFilter{
		Search:   c.Query("searchTerm"),
		IsActive: queryBoolPtr(c, "isActive"),
	}
	f.Page, f.Limit = repository.NormalizePage(
		queryInt(c, "pageNumber", 1), queryInt(c, "pageSize", repository.DefaultPageSize))

	items, total, err := h.tags.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err, "list tags")
		return
	}
	utils.JSON(c, http.StatusOK, utils.NewPage(items, total, f.Page, f.Limit))
}

// Get handles GET /api/tags/:id.
func (h *TagHandler) Get(c *gin.Context) {
	t, err := h.tags.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "get tag")
		return
	}
	utils.JSON(c, http.StatusOK, t)
}

// Create handles POST /api/tags.
func (h *TagHandler) Create(c *gin.Context) {
	var req service.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.tags.Create(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "create tag")
		return
	}
	c.Header("Location", "/api/tags/"+t.ID)
	utils.JSON(c, http.StatusCreated, t)
}

// Update handles PUT /api/tags/:id.
func (h *TagHandler) Update(c *gin.Context) {
	var req service.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ID != c.Param("id") {
		utils.Error(c, http.StatusBadRequest, "Route id does not match body id")
		return
	}

	t, err := h.tags.Update(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "update tag")
		return
	}
	utils.JSON(c, http.StatusOK, t)
}

// Delete handles DELETE /api/tags/:id.
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tags.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}
