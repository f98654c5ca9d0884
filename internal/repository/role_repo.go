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

// RoleRepository handles data access for roles.
type RoleRepository struct {
	coll *mongo.Collection
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(database.CollRoles)}
}

// GetByID returns a single role by id.
func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&role); err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

// GetByIDs returns the roles with the given ids.
func (r *RoleRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Role, error) {
	if len(ids) == 0 {
		return []models.Role{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	roles := []models.Role{}
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// List returns every role ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	roles := []models.Role{}
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Create inserts a new role document.
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	role.Version = 1
	_, err := r.coll.InsertOne(ctx, role)
	return translateError(err)
}

// Update replaces a role document with optimistic version checking.
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	expected := role.Version
	role.Version++
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID, "version": expected}, role)
	if err != nil {
		role.Version = expected
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		role.Version = expected
		n, cerr := r.coll.CountDocuments(ctx, bson.M{"_id": role.ID})
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

// Delete removes a role document physically.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
