package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/catalog-api/internal/service"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// AuthGateway is the token-exchange surface the auth endpoints dispatch to.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler proxies login, refresh, and logout to the identity provider.
type AuthHandler struct {
	auth AuthGateway
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth AuthGateway) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.authFail(c, err)
		return
	}
	utils.JSON(c, http.StatusOK, pair)
}

// Refresh handles POST /api/auth/refresh-token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.authFail(c, err)
		return
	}
	utils.JSON(c, http.StatusOK, pair)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.authFail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authFail keeps upstream rejections generic: clients learn only that the
// credentials were refused.
func (h *AuthHandler) authFail(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrInvalidCredentials) {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	fail(c, err, "auth")
}
