package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgrid/catalog-api/internal/database"
	"github.com/shopgrid/catalog-api/internal/models"
	"github.com/shopgrid/catalog-api/internal/utils"
)

// TagFilter holds the query filters for tag list endpoints.
type TagFilter struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// TagRepository handles data access for tags.
type TagRepository struct {
	coll *mongo.Collection
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(database.CollTags)}
}

func buildTagFilter(f TagFilter) bson.M {
	q := bson.M{}
	if f.Search != "" {
		q["name"] = bson.M{"$regex": regexQuoteMeta(f.Search), "$options": "i"}
	}
	if f.IsActive != nil {
		q["isActive"] = *f.IsActive
	}
	return q
}

// GetByID returns a single tag by id.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var t models.Tag
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// GetByName returns a single tag by its unique name.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var t models.Tag
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&t); err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// List returns a page of tags ordered by display order, then name.
func (r *TagRepository) List(ctx context.Context, f TagFilter) ([]models.Tag, int64, error) {
	query := buildTagFilter(f)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	_, limit, skip := clampPage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	tags := []models.Tag{}
	if err := cur.All(ctx, &tags); err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// Create inserts a new tag document.
func (r *TagRepository) Create(ctx context.Context, t *models.Tag) error {
	t.Version = 1
	_, err := r.coll.InsertOne(ctx, t)
	return translateError(err)
}

// Update replaces a tag document with optimistic version checking.
func (r *TagRepository) Update(ctx context.Context, t *models.Tag) error {
	expected := t.Version
	t.Version++
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID, "version": expected}, t)
	if err != nil {
		t.Version = expected
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		t.Version = expected
		n, cerr := r.coll.CountDocuments(ctx, bson.M{"_id": t.ID})
		if cerr != nil {
			return cerr
		}
		if n == 0 {
			return utils.ErrNotFound
		}
		return utils.ErrVersionConflict
	}
	return nil
}

// Delete removes a tag document physically.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
