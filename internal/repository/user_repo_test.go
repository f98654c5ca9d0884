package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildUserFilter(t *testing.T) {
	q := buildUserFilter(UserFilter{})
	assert.Equal(t, bson.M{"isDeleted": false}, q)

	q = buildUserFilter(UserFilter{Search: "jane"})
	or, ok := q["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 3)

	inactive := false
	q = buildUserFilter(UserFilter{IsActive: &inactive})
	assert.Equal(t, false, q["isActive"])
}
