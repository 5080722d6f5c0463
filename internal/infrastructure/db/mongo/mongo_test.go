package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/storefront/catalog-api/internal/core/domain"
)

func TestUserDocMapping(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	u := &domain.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleAdmin,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	back := toUserDoc(u).toDomain()
	assert.Equal(t, u, back)
	assert.True(t, unixToTime(0).IsZero())
}

func TestProductDocumentKeys(t *testing.T) {
	raw, err := bson.Marshal(domain.Product{ID: 3, Name: "novel", Price: 9.99, CategoryID: 2})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, int64(3), doc["_id"])
	assert.Equal(t, int64(2), doc["category_id"])
	assert.NotContains(t, doc, "categoryId")
}

func TestProductUpdateLeavesIDAlone(t *testing.T) {
	set := productUpdate(&domain.Product{ID: 3, Name: "n", CategoryID: 2})["$set"].(bson.M)
	assert.NotContains(t, set, "_id")
	assert.Equal(t, int64(2), set["category_id"])
}
