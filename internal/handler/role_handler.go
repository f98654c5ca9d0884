package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/service"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// RoleService is the use-case surface the role endpoints dispatch to.
type RoleService interface {
	Create(ctx context.Context, req *service.CreateRoleRequest, actor string) (*models.Role, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, req *service.UpdateRoleRequest, actor string) (*models.Role, error)
	Delete(ctx context.Context, id string) error
}

// RoleHandler handles role HTTP endpoints.
type RoleHandler struct {
	roles RoleService
}

// NewRoleHandler constructs a RoleHandler.
func NewRoleHandler(roles RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List handles GET /api/roles.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		fail(c, err, "list roles")
		return
	}
	utils.JSON(c, http.StatusOK, roles)
}

// Get handles GET /api/roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	r, err := h.roles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "get role")
		return
	}
	utils.JSON(c, http.StatusOK, r)
}

// Create handles POST /api/roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r, err := h.roles.Create(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "create role")
		return
	}
	c.Header("Location", "/api/roles/"+r.ID)
	utils.JSON(c, http.StatusCreated, r)
}

// Update handles PUT /api/roles/:id.
func (h *RoleHandler) Update(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ID != c.Param("id") {
		utils.Error(c, http.StatusBadRequest, "Route id does not match body id")
		return
	}

	r, err := h.roles.Update(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "update role")
		return
	}
	utils.JSON(c, http.StatusOK, r)
}

// Delete handles DELETE /api/roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "delete role")
		return
	}
	c.Status(http.StatusNoContent)
}
