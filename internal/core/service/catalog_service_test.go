package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/infrastructure/db/memory"
)

type catalogFixture struct {
	store      *memory.Store
	products   *ProductService
	categories *CategoryService
}

func newCatalogFixture() catalogFixture {
	store := memory.NewStore()
	return catalogFixture{
		store:      store,
		products:   NewProductService(store.Products(), store.Categories(), zerolog.Nop()),
		categories: NewCategoryService(store.Categories(), store.Products(), store.Users(), zerolog.Nop()),
	}
}

func ptr[T any](v T) *T { return &v }

func TestProductService_Create(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	books, err := f.categories.Create(ctx, "books")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	p, err := f.products.Create(ctx, ports.ProductInput{Name: " novel ", Price: 10, CategoryID: books.ID})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if p.ID == 0 || p.Name != "novel" || p.CategoryID != books.ID {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := f.products.Create(ctx, ports.ProductInput{Name: "x", CategoryID: 99}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := f.products.Create(ctx, ports.ProductInput{Name: "", CategoryID: books.ID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := f.products.Create(ctx, ports.ProductInput{Name: "x", Price: -1, CategoryID: books.ID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestProductService_ReplaceAndPatch(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	books, _ := f.categories.Create(ctx, "books")
	games, _ := f.categories.Create(ctx, "games")
	p, _ := f.products.Create(ctx, ports.ProductInput{Name: "novel", Description: "d", Price: 10, CategoryID: books.ID})

	replaced, err := f.products.Replace(ctx, p.ID, ports.ProductInput{Name: "chess", Price: 30, CategoryID: games.ID})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Name != "chess" || replaced.Description != "" || replaced.CategoryID != games.ID {
		t.Fatalf("unexpected replace result: %+v", replaced)
	}

	patched, err := f.products.Patch(ctx, p.ID, ports.ProductPatch{Price: ptr(25.5)})
	if err != nil {
		t.Fatalf("patch without category: %v", err)
	}
	if patched.Price != 25.5 || patched.Name != "chess" || patched.CategoryID != games.ID {
		t.Fatalf("patch touched unrelated fields: %+v", patched)
	}

	stored, _ := f.products.Get(ctx, p.ID)
	if stored.Price != 25.5 {
		t.Fatalf("patch not persisted: %+v", stored)
	}

	if _, err := f.products.Patch(ctx, p.ID, ports.ProductPatch{CategoryID: ptr(int64(77))}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := f.products.Patch(ctx, 404, ports.ProductPatch{}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := f.products.Replace(ctx, 404, ports.ProductInput{Name: "x", CategoryID: books.ID}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	books, _ := f.categories.Create(ctx, "books")
	p, _ := f.products.Create(ctx, ports.ProductInput{Name: "novel", CategoryID: books.ID})

	if err := f.products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.products.Delete(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCategoryService_ListEmbedsProducts(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	user, _ := f.store.Users().Create(ctx, &domain.User{Username: "bob", Role: domain.RoleUser})
	books, _ := f.categories.Create(ctx, "books")
	_, _ = f.categories.Create(ctx, "empty")
	_, _ = f.products.Create(ctx, ports.ProductInput{Name: "novel", CategoryID: books.ID})
	_, _ = f.products.Create(ctx, ports.ProductInput{Name: "atlas", CategoryID: books.ID})

	list, err := f.categories.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list))
	}
	if len(list[0].Products) != 2 {
		t.Fatalf("expected books to carry 2 products, got %+v", list[0])
	}
	if list[1].Products == nil || len(list[1].Products) != 0 {
		t.Fatalf("expected empty product slice, got %#v", list[1].Products)
	}
}

func TestCategoryService_ListUnknownUser(t *testing.T) {
	f := newCatalogFixture()

	if _, err := f.categories.List(context.Background(), 9); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCategoryService_RenamePersists(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	c, _ := f.categories.Create(ctx, "books")
	if _, err := f.categories.Rename(ctx, c.ID, "novels"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := f.categories.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "novels" {
		t.Fatalf("rename not persisted: %+v", got)
	}

	if _, err := f.categories.Patch(ctx, c.ID, ports.CategoryPatch{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if _, err := f.categories.Patch(ctx, c.ID, ports.CategoryPatch{Name: ptr("  ")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.categories.Rename(ctx, 404, "x"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_DeleteInUse(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	c, _ := f.categories.Create(ctx, "books")
	p, _ := f.products.Create(ctx, ports.ProductInput{Name: "novel", CategoryID: c.ID})

	if err := f.categories.Delete(ctx, c.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	_ = f.products.Delete(ctx, p.ID)
	if err := f.categories.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.categories.Delete(ctx, c.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
