package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgrid/catalog-api/internal/database"
	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// ProductFilter holds the query filters for product list endpoints.
// Empty or nil fields are ignored; active filters always AND-combine.
type ProductFilter struct {
	Search      string
	CategoryID  string
	MinPrice    *float64
	MaxPrice    *float64
	IsPublished *bool
	IsFeatured  *bool
	SortBy      string // name, price, createdAt
	SortDesc    bool
	Page        int
	Limit       int
}

// ProductRepository handles data access for products.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(database.CollProducts)}
}

// buildProductFilter translates a ProductFilter into a bson query document.
// Soft-deleted products are excluded from every read.
func buildProductFilter(f ProductFilter) bson.M {
	q := bson.M{"isDeleted": false}
	if f.Search != "" {
		pattern := regexQuoteMeta(f.Search)
		q["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if f.CategoryID != "" {
		q["categoryId"] = f.CategoryID
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	if f.IsPublished != nil {
		q["isPublished"] = *f.IsPublished
	}
	if f.IsFeatured != nil {
		q["isFeatured"] = *f.IsFeatured
	}
	return q
}

// productSort resolves the ordering rule. Name ascending is the default.
func productSort(f ProductFilter) bson.D {
	field := "name"
	switch f.SortBy {
	case "price":
		field = "price"
	case "createdAt":
		field = "createdAt"
	}
	dir := 1
	if f.SortDesc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}

// GetByID returns a single product by id. Soft-deleted products are invisible.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&p)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// GetBySKU returns a single product by SKU among non-deleted products.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var p models.Product
	err := r.coll.FindOne(ctx, bson.M{"sku": sku, "isDeleted": false}).Decode(&p)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// List returns a page of products matching the filter plus the total count.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := buildProductFilter(f)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	_, limit, skip := clampPage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(productSort(f)).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Count returns the number of products matching the filter.
func (r *ProductRepository) Count(ctx context.Context, f ProductFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, buildProductFilter(f))
}

// CountByCategory returns the number of non-deleted products in a category.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"categoryId": categoryID, "isDeleted": false})
}

// Create inserts a new product document.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	p.Version = 1
	_, err := r.coll.InsertOne(ctx, p)
	return translateError(err)
}

// Update replaces a product document. The write matches on id plus the
// version the caller read, and bumps the version. A missing match on an
// existing product means a concurrent writer won.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	expected := p.Version
	p.Version++
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID, "version": expected, "isDeleted": false}, p)
	if err != nil {
		p.Version = expected
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		p.Version = expected
		return r.missError(ctx, p.ID)
	}
	return nil
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{
			"$set": bson.M{"isDeleted": true, "deletedAt": now, "updatedAt": now},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// missError distinguishes a vanished document from a stale version.
func (r *ProductRepository) missError(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id, "isDeleted": false})
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return utils.ErrVersionConflict
}
