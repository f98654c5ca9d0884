package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWork aggregates the entity repositories and exposes the transaction
// boundary. One instance serves the whole process; the per-request scope is
// carried by the context.
type UnitOfWork struct {
	client *mongo.Client

	products   *ProductRepository
	categories *CategoryRepository
	tags       *TagRepository
	users      *UserRepository
	roles      *RoleRepository
}

// NewUnitOfWork constructs a UnitOfWork over a connected database.
func NewUnitOfWork(client *mongo.Client, db *mongo.Database) *UnitOfWork {
	return &UnitOfWork{
		client:     client,
		products:   NewProductRepository(db),
		categories: NewCategoryRepository(db),
		tags:       NewTagRepository(db),
		users:      NewUserRepository(db),
		roles:      NewRoleRepository(db),
	}
}

// Products returns the product repository.
func (u *UnitOfWork) Products() *ProductRepository { return u.products }

// Categories returns the category repository.
func (u *UnitOfWork) Categories() *CategoryRepository { return u.categories }

// Tags returns the tag repository.
func (u *UnitOfWork) Tags() *TagRepository { return u.tags }

// Users returns the user repository.
func (u *UnitOfWork) Users() *UserRepository { return u.users }

// Roles returns the role repository.
func (u *UnitOfWork) Roles() *RoleRepository { return u.roles }

// Tx is an explicit transaction handle over a mongo session.
type Tx struct {
	session mongo.Session
	ctx     mongo.SessionContext
}

// Context returns the session-bound context. Repository calls made with it
// participate in the transaction.
func (t *Tx) Context() context.Context { return t.ctx }

// Commit commits the transaction and ends the session.
func (t *Tx) Commit() error {
	defer t.session.EndSession(context.Background())
	if err := t.session.CommitTransaction(t.ctx); err != nil {
		_ = t.session.AbortTransaction(t.ctx)
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// Rollback aborts the transaction and ends the session.
func (t *Tx) Rollback() error {
	defer t.session.EndSession(context.Background())
	return t.session.AbortTransaction(t.ctx)
}

// Begin starts a multi-document transaction. Requires a replica-set or
// sharded deployment; standalone servers reject the session start.
func (u *UnitOfWork) Begin(ctx context.Context) (*Tx, error) {
	session, err := u.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return &Tx{session: session, ctx: mongo.NewSessionContext(ctx, session)}, nil
}

// WithTransaction runs fn inside a transaction. The context passed to fn is
// session-bound; on error the transaction is rolled back and the error
// returned, otherwise it is committed.
func (u *UnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx.Context()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// IsCategoryInUse reports whether any non-deleted product references the
// category. Categories in use must not be deleted.
func (u *UnitOfWork) IsCategoryInUse(ctx context.Context, categoryID string) (bool, error) {
	n, err := u.products.CountByCategory(ctx, categoryID)
	return n > 0, err
}

// TotalProductCount returns the number of non-deleted products.
func (u *UnitOfWork) TotalProductCount(ctx context.Context) (int64, error) {
	return u.products.Count(ctx, ProductFilter{})
}

// TotalCategoryCount returns the number of non-deleted categories.
func (u *UnitOfWork) TotalCategoryCount(ctx context.Context) (int64, error) {
	return u.categories.Count(ctx)
}
