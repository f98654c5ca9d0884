package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// roleStore is the role persistence surface the service needs.
type roleStore interface {
	GetByID(ctx context.Context, id string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Create(ctx context.Context, r *models.Role) error
	Update(ctx context.Context, r *models.Role) error
	Delete(ctx context.Context, id string) error
}

// roleLinkCleaner removes user-role links when a role disappears.
type roleLinkCleaner interface {
	RemoveRoleLinks(ctx context.Context, roleID string) error
}

// RoleService handles role CRUD use cases.
type RoleService struct {
	roles roleStore
	links roleLinkCleaner
	tx    txRunner
}

// NewRoleService constructs a RoleService.
func NewRoleService(roles roleStore, links roleLinkCleaner, tx txRunner) *RoleService {
	return &RoleService{roles: roles, links: links, tx: tx}
}

// CreateRoleRequest represents the request to create a role.
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateRoleRequest represents the request to update a role.
type UpdateRoleRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Version     int64  `json:"version"`
}

// Create creates a role. Name uniqueness is enforced by the store index.
func (s *RoleService) Create(ctx context.Context, req *CreateRoleRequest, actor string) (*models.Role, error) {
	r := &models.Role{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	r.Stamp(actor)

	if err := s.roles.Create(ctx, r); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, fmt.Errorf("role %s already exists: %w", req.Name, utils.ErrConflict)
		}
		return nil, err
	}
	return r, nil
}

// Get retrieves a role by ID.
func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// List returns every role.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.roles.List(ctx)
}

// Update updates a role.
func (s *RoleService) Update(ctx context.Context, req *UpdateRoleRequest, actor string) (*models.Role, error) {
	r, err := s.roles.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	r.Name = req.Name
	r.Description = req.Description
	r.Touch(actor)

	if req.Version != 0 {
		r.Version = req.Version
	}

	if err := s.roles.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a role and every membership link pointing at it, in one
// transaction.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.roles.Delete(ctx, id); err != nil {
			return err
		}
		return s.links.RemoveRoleLinks(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info().Str("role_id", id).Msg("role deleted")
	return nil
}
