package repository

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopgrid/catalog-api/internal/utils"
)

// Pagination bounds applied to every list query.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps a requested page number and size to the allowed
// window. Handlers apply it before dispatch so the response envelope always
// describes the window actually served.
func NormalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// clampPage normalizes a page number and size and returns them along with
// the skip offset.
func clampPage(page, size int) (int, int, int64) {
	page, size = NormalizePage(page, size)
	return page, size, int64(page-1) * int64(size)
}

// regexQuoteMeta escapes a user-supplied search term so it matches as a
// literal substring inside a $regex query.
func regexQuoteMeta(term string) string {
	return regexp.QuoteMeta(term)
}

// translateError maps driver errors to the application sentinels. Duplicate
// key violations come from the unique indexes created at startup.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrConflict
	}
	return err
}
