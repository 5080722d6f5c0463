package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/catalog-api/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	alice, err := users.Create(ctx, &domain.User{Username: "alice", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	_, err = users.Create(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	byID, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = users.FindByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = users.FindByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCatalogRepositories(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	categories, products := store.Categories(), store.Products()

	books, err := categories.Create(ctx, &domain.Category{Name: "books"})
	require.NoError(t, err)

	_, err = products.Create(ctx, &domain.Product{Name: "orphan", CategoryID: 42})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	novel, err := products.Create(ctx, &domain.Product{Name: "novel", Price: 9.5, CategoryID: books.ID})
	require.NoError(t, err)

	inBooks, err := products.FindByCategory(ctx, books.ID)
	require.NoError(t, err)
	assert.Len(t, inBooks, 1)

	assert.ErrorIs(t, categories.Delete(ctx, books.ID), domain.ErrCategoryInUse)

	novel.Price = 12
	require.NoError(t, products.Update(ctx, novel))
	got, err := products.FindByID(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Price)

	require.NoError(t, products.Delete(ctx, novel.ID))
	assert.ErrorIs(t, products.Delete(ctx, novel.ID), domain.ErrProductNotFound)
	require.NoError(t, categories.Delete(ctx, books.ID))
	assert.ErrorIs(t, categories.Update(ctx, books), domain.ErrCategoryNotFound)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	categories := NewStore().Categories()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = categories.Create(ctx, &domain.Category{Name: "c"})
		}()
	}
	wg.Wait()

	all, err := categories.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	for i, c := range all {
		assert.Equal(t, int64(i+1), c.ID)
	}
}
