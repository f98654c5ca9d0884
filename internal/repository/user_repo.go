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

// UserFilter holds the query filters for user list endpoints.
type UserFilter struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// UserRepository handles data access for users and their role links.
type UserRepository struct {
	coll      *mongo.Collection
	roleLinks *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll:      db.Collection(database.CollUsers),
		roleLinks: db.Collection(database.CollUserRoles),
	}
}

func buildUserFilter(f UserFilter) bson.M {
	q := bson.M{"isDeleted": false}
	if f.Search != "" {
		pattern := regexQuoteMeta(f.Search)
		q["$or"] = bson.A{
			bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"firstName": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"lastName": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if f.IsActive != nil {
		q["isActive"] = *f.IsActive
	}
	return q
}

// GetByID returns a single user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&u)
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// GetByEmail returns a single user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email, "isDeleted": false}).Decode(&u)
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// List returns a page of users matching the filter plus the total count.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	query := buildUserFilter(f)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	_, limit, skip := clampPage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.Version = 1
	_, err := r.coll.InsertOne(ctx, u)
	return translateError(err)
}

// Update replaces a user document with optimistic version checking.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	expected := u.Version
	u.Version++
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID, "version": expected, "isDeleted": false}, u)
	if err != nil {
		u.Version = expected
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		u.Version = expected
		n, cerr := r.coll.CountDocuments(ctx, bson.M{"_id": u.ID, "isDeleted": false})
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

// Delete soft-deletes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
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

// AddRole links a role to a user via a join document.
func (r *UserRepository) AddRole(ctx context.Context, link *models.UserRole) error {
	_, err := r.roleLinks.InsertOne(ctx, link)
	return translateError(err)
}

// RemoveRole removes a user-role link.
func (r *UserRepository) RemoveRole(ctx context.Context, userID, roleID string) error {
	res, err := r.roleLinks.DeleteOne(ctx, bson.M{"userId": userID, "roleId": roleID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// RoleIDs returns the role ids linked to a user.
func (r *UserRepository) RoleIDs(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.roleLinks.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	links := []models.UserRole{}
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.RoleID)
	}
	return ids, nil
}

// RemoveRoleLinks deletes every link pointing at the given role. Used when a
// role itself is removed.
func (r *UserRepository) RemoveRoleLinks(ctx context.Context, roleID string) error {
	_, err := r.roleLinks.DeleteMany(ctx, bson.M{"roleId": roleID})
	return err
}
