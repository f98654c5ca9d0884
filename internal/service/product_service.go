package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// productStore is the product persistence surface the service needs.
type productStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// categoryChecker verifies category references.
type categoryChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// StatsInvalidator drops cached dashboard counts after a write.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ProductService handles product CRUD use cases and their business rules.
type ProductService struct {
	products   productStore
	categories categoryChecker
	stats      StatsInvalidator
}

// NewProductService constructs a ProductService. stats may be nil when no
// cache is configured.
func NewProductService(products productStore, categories categoryChecker, stats StatsInvalidator) *ProductService {
	return &ProductService{products: products, categories: categories, stats: stats}
}

// CreateProductRequest represents the request to create a new product.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"min=0"`
	DiscountPrice *float64 `json:"discountPrice" binding:"omitempty,min=0"`
	StockQuantity int      `json:"stockQuantity" binding:"min=0"`
	SKU           string   `json:"sku"`
	Barcode       string   `json:"barcode"`
	Weight        float64  `json:"weight" binding:"min=0"`
	Width         float64  `json:"width" binding:"min=0"`
	Height        float64  `json:"height" binding:"min=0"`
	Length        float64  `json:"length" binding:"min=0"`
	CategoryID    string   `json:"categoryId" binding:"required"`
	IsFeatured    bool     `json:"isFeatured"`
	IsPublished   bool     `json:"isPublished"`
}

// UpdateProductRequest represents the request to update a product. Version
// carries the concurrency token the client last read; zero skips the check.
type UpdateProductRequest struct {
	ID            string   `json:"id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"min=0"`
	DiscountPrice *float64 `json:"discountPrice" binding:"omitempty,min=0"`
	StockQuantity int      `json:"stockQuantity" binding:"min=0"`
	SKU           string   `json:"sku"`
	Barcode       string   `json:"barcode"`
	Weight        float64  `json:"weight" binding:"min=0"`
	Width         float64  `json:"width" binding:"min=0"`
	Height        float64  `json:"height" binding:"min=0"`
	Length        float64  `json:"length" binding:"min=0"`
	CategoryID    string   `json:"categoryId" binding:"required"`
	IsFeatured    bool     `json:"isFeatured"`
	IsPublished   bool     `json:"isPublished"`
	Version       int64    `json:"version"`
}

// Create creates a new product. The referenced category must exist and the
// SKU, when supplied, must be unused.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest, actor string) (*models.Product, error) {
	ok, err := s.categories.Exists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("category %s: %w", req.CategoryID, utils.ErrNotFound)
	}

	if req.SKU != "" {
		if _, err := s.products.GetBySKU(ctx, req.SKU); err == nil {
			return nil, fmt.Errorf("sku %s already exists: %w", req.SKU, utils.ErrConflict)
		} else if !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
	}

	p := &models.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Weight:        req.Weight,
		Width:         req.Width,
		Height:        req.Height,
		Length:        req.Length,
		CategoryID:    req.CategoryID,
		IsFeatured:    req.IsFeatured,
		IsPublished:   req.IsPublished,
	}
	p.Stamp(actor)
	if p.IsPublished {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List returns a page of products matching the filter plus the total count.
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error) {
	return s.products.List(ctx, f)
}

// Update updates a product. The target and the referenced category must
// exist; a SKU held by a different product is a conflict.
func (s *ProductService) Update(ctx context.Context, req *UpdateProductRequest, actor string) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != p.CategoryID {
		ok, err := s.categories.Exists(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("category %s: %w", req.CategoryID, utils.ErrNotFound)
		}
	}

	if req.SKU != "" && req.SKU != p.SKU {
		existing, err := s.products.GetBySKU(ctx, req.SKU)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != p.ID {
			return nil, fmt.Errorf("sku %s already exists: %w", req.SKU, utils.ErrConflict)
		}
	}

	wasPublished := p.IsPublished

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.DiscountPrice = req.DiscountPrice
	p.StockQuantity = req.StockQuantity
	p.SKU = req.SKU
	p.Barcode = req.Barcode
	p.Weight = req.Weight
	p.Width = req.Width
	p.Height = req.Height
	p.Length = req.Length
	p.CategoryID = req.CategoryID
	p.IsFeatured = req.IsFeatured
	p.IsPublished = req.IsPublished
	if p.IsPublished && !wasPublished {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
	if !p.IsPublished {
		p.PublishedAt = nil
	}
	p.Touch(actor)

	if req.Version != 0 {
		p.Version = req.Version
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return p, nil
}

// Delete soft-deletes a product. Deletion is unconditional; only categories
// carry an in-use check.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}
