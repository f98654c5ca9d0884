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

// CategoryFilter holds the query filters for category list endpoints.
type CategoryFilter struct {
	Search   string
	ParentID *string // nil means no filter; pointer to "" matches roots
	Page     int
	Limit    int
}

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(database.CollCategories)}
}

// buildCategoryFilter translates a CategoryFilter into a bson query document.
func buildCategoryFilter(f CategoryFilter) bson.M {
	q := bson.M{"isDeleted": false}
	if f.Search != "" {
		q["name"] = bson.M{"$regex": regexQuoteMeta(f.Search), "$options": "i"}
	}
	if f.ParentID != nil {
		if *f.ParentID == "" {
			q["parentId"] = bson.M{"$exists": false}
		} else {
			q["parentId"] = *f.ParentID
		}
	}
	return q
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&c)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// GetBySlug returns a single category by slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := r.coll.FindOne(ctx, bson.M{"slug": slug, "isDeleted": false}).Decode(&c)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// Exists reports whether a non-deleted category with the id exists.
func (r *CategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id, "isDeleted": false})
	return n > 0, err
}

// List returns a page of categories matching the filter plus the total count.
func (r *CategoryRepository) List(ctx context.Context, f CategoryFilter) ([]models.Category, int64, error) {
	query := buildCategoryFilter(f)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	_, limit, skip := clampPage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ListAll returns every non-deleted category, used to assemble the tree.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{"isDeleted": false},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Count returns the number of non-deleted categories.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"isDeleted": false})
}

// Create inserts a new category document.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	c.Version = 1
	_, err := r.coll.InsertOne(ctx, c)
	return translateError(err)
}

// Update replaces a category document with optimistic version checking.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	expected := c.Version
	c.Version++
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID, "version": expected, "isDeleted": false}, c)
	if err != nil {
		c.Version = expected
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		c.Version = expected
		exists, cerr := r.Exists(ctx, c.ID)
		if cerr != nil {
			return cerr
		}
		if !exists {
			return utils.ErrNotFound
		}
		return utils.ErrVersionConflict
	}
	return nil
}

// Delete soft-deletes a category. Callers must run the in-use check first.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
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
