package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	appconfig "github.com/shopgrid/catalog-api/internal/config"
)

// Collection names. Each entity maps 1:1 to a collection.
const (
	CollProducts   = "products"
	CollCategories = "categories"
	CollTags       = "tags"
	CollUsers      = "users"
	CollRoles      = "roles"
	CollUserRoles  = "user_roles"
)

// Connect establishes a MongoDB connection using the provided configuration.
// It applies a small retry strategy to handle transient bootstrapping issues
// (e.g., DB container starting up). The returned database handle is pinged
// before returning.
func Connect(cfg *appconfig.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg == nil {
		return nil, nil, errors.New("nil mongo config")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(25).
		SetConnectTimeout(cfg.Timeout)

	// Retry policy: up to 5 attempts, exponential backoff starting at 500ms.
	const (
		maxAttempts = 5
		baseDelay   = 500 * time.Millisecond
	)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
			if err == nil {
				cancel()
				return client, client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(context.Background())
		}
		cancel()
		lastErr = err
		sleepWithBackoff(attempt, baseDelay)
	}

	return nil, nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", maxAttempts, lastErr)
}

// EnsureIndexes creates the unique indexes the catalog relies on. Uniqueness
// of SKU, barcode, slug, tag name, and user email is enforced here at the
// store level, not only in application checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexSet struct {
		coll    string
		indexes []mongo.IndexModel
	}

	notDeleted := bson.M{"isDeleted": false}

	sets := []indexSet{
		{
			coll: CollProducts,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "sku", Value: 1}},
					Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
						"isDeleted": false,
						"sku":       bson.M{"$exists": true, "$type": "string"},
					}),
				},
				{
					Keys: bson.D{{Key: "barcode", Value: 1}},
					Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
						"isDeleted": false,
						"barcode":   bson.M{"$exists": true, "$type": "string"},
					}),
				},
				{Keys: bson.D{{Key: "categoryId", Value: 1}}},
				{Keys: bson.D{{Key: "name", Value: 1}}},
			},
		},
		{
			coll: CollCategories,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "slug", Value: 1}},
					Options: options.Index().SetUnique(true).SetPartialFilterExpression(notDeleted),
				},
				{Keys: bson.D{{Key: "parentId", Value: 1}}},
			},
		},
		{
			coll: CollTags,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			coll: CollUsers,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true).SetPartialFilterExpression(notDeleted),
				},
			},
		},
		{
			coll: CollRoles,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			coll: CollUserRoles,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "roleId", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
	}

	for _, s := range sets {
		if _, err := db.Collection(s.coll).Indexes().CreateMany(ctx, s.indexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", s.coll, err)
		}
	}
	return nil
}

// sleepWithBackoff sleeps for an exponentially increasing duration.
func sleepWithBackoff(attempt int, base time.Duration) {
	// Simple exponential backoff: base * 2^(attempt-1), capped to 5s.
	d := base << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	time.Sleep(d)
}
