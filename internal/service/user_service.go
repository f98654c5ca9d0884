package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// userStore is the user persistence surface the service needs.
type userStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f repository.UserFilter) ([]models.User, int64, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	AddRole(ctx context.Context, link *models.UserRole) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	RoleIDs(ctx context.Context, userID string) ([]string, error)
}

// roleLookup resolves role records for membership expansion.
type roleLookup interface {
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Role, error)
}

// UserService handles admin-user CRUD and role membership.
type UserService struct {
	users userStore
	roles roleLookup
}

// NewUserService constructs a UserService.
func NewUserService(users userStore, roles roleLookup) *UserService {
	return &UserService{users: users, roles: roles}
}

// CreateUserRequest represents the request to create a user record.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
}

// UpdateUserRequest represents the request to update a user record.
type UpdateUserRequest struct {
	ID        string `json:"id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
	Version   int64  `json:"version"`
}

// Create creates a user record with a unique email.
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest, actor string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %s already exists: %w", req.Email, utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	u := &models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	}
	u.Stamp(actor)

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("email", u.Email).Msg("user created")
	return u, nil
}

// Get retrieves a user with roles resolved.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.users.RoleIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Roles, err = s.roles.GetByIDs(ctx, ids); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns a page of users matching the filter plus the total count.
func (s *UserService) List(ctx context.Context, f repository.UserFilter) ([]models.User, int64, error) {
	return s.users.List(ctx, f)
}

// Update updates a user record; an email change must stay unique.
func (s *UserService) Update(ctx context.Context, req *UpdateUserRequest, actor string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != u.Email {
		existing, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != u.ID {
			return nil, fmt.Errorf("email %s already exists: %w", req.Email, utils.ErrConflict)
		}
	}

	u.Email = req.Email
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.IsActive = req.IsActive
	u.Touch(actor)

	if req.Version != 0 {
		u.Version = req.Version
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete soft-deletes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// AssignRole links a role to a user. Both must exist; assigning an already
// held role is a conflict (unique index on the join).
func (s *UserService) AssignRole(ctx context.Context, userID, roleID, actor string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return err
	}

	link := &models.UserRole{
		ID:     uuid.NewString(),
		UserID: userID,
		RoleID: roleID,
	}
	link.Stamp(actor)
	return s.users.AddRole(ctx, link)
}

// RemoveRole unlinks a role from a user.
func (s *UserService) RemoveRole(ctx context.Context, userID, roleID string) error {
	return s.users.RemoveRole(ctx, userID, roleID)
}
