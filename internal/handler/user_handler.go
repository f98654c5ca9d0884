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

// UserService is the use-case surface the user endpoints dispatch to.
type UserService interface {
	Create(ctx context.Context, req *service.CreateUserRequest, actor string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, f repository.UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, req *service.UpdateUserRequest, actor string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	AssignRole(ctx context.Context, userID, roleID, actor string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
}

// UserHandler handles user HTTP endpoints.
type UserHandler struct {
	users UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	f := repository.UserFilter{
		Search:   c.Query("searchTerm"),
		IsActive: queryBoolPtr(c, "isActive"),
	}
	f.Page, f.Limit = repository.NormalizePage(
		queryInt(c, "pageNumber", 1), queryInt(c, "pageSize", repository.DefaultPageSize))

	items, total, err := h.users.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err, "list users")
		return
	}
	utils.JSON(c, http.StatusOK, utils.NewPage(items, total, f.Page, f.Limit))
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "get user")
		return
	}
	utils.JSON(c, http.StatusOK, u)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.users.Create(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "create user")
		return
	}
	c.Header("Location", "/api/users/"+u.ID)
	utils.JSON(c, http.StatusCreated, u)
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ID != c.Param("id") {
		utils.Error(c, http.StatusBadRequest, "Route id does not match body id")
		return
	}

	u, err := h.users.Update(c.Request.Context(), &req, actor(c))
	if err != nil {
		fail(c, err, "update user")
		return
	}
	utils.JSON(c, http.StatusOK, u)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignRole handles POST /api/users/:id/roles/:roleId.
func (h *UserHandler) AssignRole(c *gin.Context) {
	err := h.users.AssignRole(c.Request.Context(), c.Param("id"), c.Param("roleId"), actor(c))
	if err != nil {
		fail(c, err, "assign role")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveRole handles DELETE /api/users/:id/roles/:roleId.
func (h *UserHandler) RemoveRole(c *gin.Context) {
	err := h.users.RemoveRole(c.Request.Context(), c.Param("id"), c.Param("roleId"))
	if err != nil {
		fail(c, err, "remove role")
		return
	}
	c.Status(http.StatusNoContent)
}
