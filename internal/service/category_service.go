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

// categoryStore is the category persistence surface the service needs.
type categoryStore interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f repository.CategoryFilter) ([]models.Category, int64, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
}

// categoryUsage answers whether any product still references a category.
type categoryUsage interface {
	IsCategoryInUse(ctx context.Context, categoryID string) (bool, error)
}

// txRunner runs a function inside a store transaction.
type txRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CategoryService handles category CRUD use cases, slug derivation, and the
// tree invariants.
type CategoryService struct {
	categories categoryStore
	usage      categoryUsage
	tx         txRunner
	stats      StatsInvalidator
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories categoryStore, usage categoryUsage, tx txRunner, stats StatsInvalidator) *CategoryService {
	return &CategoryService{categories: categories, usage: usage, tx: tx, stats: stats}
}

// CreateCategoryRequest represents the request to create a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
}

// UpdateCategoryRequest represents the request to update a category.
type UpdateCategoryRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
	Version     int64   `json:"version"`
}

// Create creates a category. The slug is derived from the name; the parent,
// when given, must exist.
func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest, actor string) (*models.Category, error) {
	if req.ParentID != nil {
		ok, err := s.categories.Exists(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("parent category %s: %w", *req.ParentID, utils.ErrNotFound)
		}
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("name produces an empty slug: %w", utils.ErrValidation)
	}
	if _, err := s.categories.GetBySlug(ctx, slug); err == nil {
		return nil, fmt.Errorf("slug %s already exists: %w", slug, utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	c := &models.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug,
		ParentID:    req.ParentID,
		IsMain:      req.ParentID == nil,
	}
	c.Stamp(actor)

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	log.Info().Str("category_id", c.ID).Str("slug", c.Slug).Msg("category created")
	return c, nil
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// GetBySlug retrieves a category by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

// List returns a page of categories matching the filter plus the total count.
func (s *CategoryService) List(ctx context.Context, f repository.CategoryFilter) ([]models.Category, int64, error) {
	return s.categories.List(ctx, f)
}

// Tree assembles the category tree from parent links. Orphaned subtrees
// (parent missing) surface as roots rather than disappearing.
func (s *CategoryService) Tree(ctx context.Context) ([]*models.CategoryNode, error) {
	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*models.CategoryNode, len(all))
	for i := range all {
		nodes[all[i].ID] = &models.CategoryNode{Category: all[i], Children: []*models.CategoryNode{}}
	}

	roots := []*models.CategoryNode{}
	for _, n := range nodes {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Update updates a category. Re-parenting is validated against the no-cycle
// invariant: a category must never become its own ancestor.
func (s *CategoryService) Update(ctx context.Context, req *UpdateCategoryRequest, actor string) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == c.ID {
			return nil, fmt.Errorf("category cannot be its own parent: %w", utils.ErrCategoryCycle)
		}
		ok, err := s.categories.Exists(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("parent category %s: %w", *req.ParentID, utils.ErrNotFound)
		}
		if err := s.checkNoCycle(ctx, c.ID, *req.ParentID); err != nil {
			return nil, err
		}
	}

	if req.Name != c.Name {
		slug := utils.Slugify(req.Name)
		if slug == "" {
			return nil, fmt.Errorf("name produces an empty slug: %w", utils.ErrValidation)
		}
		if existing, err := s.categories.GetBySlug(ctx, slug); err == nil {
			if existing.ID != c.ID {
				return nil, fmt.Errorf("slug %s already exists: %w", slug, utils.ErrConflict)
			}
		} else if !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		c.Slug = slug
	}

	c.Name = req.Name
	c.Description = req.Description
	c.ParentID = req.ParentID
	c.IsMain = req.ParentID == nil
	c.Touch(actor)

	if req.Version != 0 {
		c.Version = req.Version
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return c, nil
}

// Delete soft-deletes a category. A category referenced by any product must
// not be deleted; the check and the delete run in one transaction.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inUse, err := s.usage.IsCategoryInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return fmt.Errorf("category %s is referenced by products: %w", id, utils.ErrCategoryInUse)
		}
		return s.categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateStats(ctx)
	log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

// checkNoCycle walks the parent chain from newParentID upwards and fails if
// it reaches id. The walk is bounded to tolerate corrupted parent data.
func (s *CategoryService) checkNoCycle(ctx context.Context, id, newParentID string) error {
	const maxDepth = 64
	current := newParentID
	for depth := 0; depth < maxDepth; depth++ {
		parent, err := s.categories.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return fmt.Errorf("category %s would become its own ancestor: %w", id, utils.ErrCategoryCycle)
		}
		current = *parent.ParentID
	}
	return fmt.Errorf("parent chain exceeds %d levels: %w", maxDepth, utils.ErrValidation)
}

func (s *CategoryService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}
