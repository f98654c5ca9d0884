package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// tagStore is the tag persistence surface the service needs.
type tagStore interface {
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context, f repository.TagFilter) ([]models.Tag, int64, error)
	Create(ctx context.Context, t *models.Tag) error
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id string) error
}

// TagService handles tag CRUD use cases.
type TagService struct {
	tags tagStore
}

// NewTagService constructs a TagService.
func NewTagService(tags tagStore) *TagService {
	return &TagService{tags: tags}
}

// CreateTagRequest represents the request to create a tag.
type CreateTagRequest struct {
	Name         string `json:"name" binding:"required"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"displayOrder" binding:"min=0"`
	IsActive     bool   `json:"isActive"`
}

// UpdateTagRequest represents the request to update a tag.
type UpdateTagRequest struct {
	ID           string `json:"id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"displayOrder" binding:"min=0"`
	IsActive     bool   `json:"isActive"`
	Version      int64  `json:"version"`
}

// Create creates a tag with a unique name.
func (s *TagService) Create(ctx context.Context, req *CreateTagRequest, actor string) (*models.Tag, error) {
	if _, err := s.tags.GetByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("tag %s already exists: %w", req.Name, utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	t := &models.Tag{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Icon:         req.Icon,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	t.Stamp(actor)

	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a tag by ID.
func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// List returns a page of tags matching the filter plus the total count.
func (s *TagService) List(ctx context.Context, f repository.TagFilter) ([]models.Tag, int64, error) {
	return s.tags.List(ctx, f)
}

// Update updates a tag; a rename must keep the name unique.
func (s *TagService) Update(ctx context.Context, req *UpdateTagRequest, actor string) (*models.Tag, error) {
	t, err := s.tags.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != t.Name {
		existing, err := s.tags.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != t.ID {
			return nil, fmt.Errorf("tag %s already exists: %w", req.Name, utils.ErrConflict)
		}
	}

	t.Name = req.Name
	t.Icon = req.Icon
	t.Color = req.Color
	t.DisplayOrder = req.DisplayOrder
	t.IsActive = req.IsActive
	t.Touch(actor)

	if req.Version != 0 {
		t.Version = req.Version
	}

	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tag.
func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.tags.Delete(ctx, id)
}
