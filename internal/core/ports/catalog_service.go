package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// ProductInput carries the fields of a full create or replace.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  int64
}

// ProductPatch carries a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
}

// CategoryPatch carries a partial update; nil fields are left unchanged.
type CategoryPatch struct {
	Name *string
}

// ProductService defines use-case operations for products.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Replace(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	Patch(ctx context.Context, id int64, in ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.CategoryWithProducts, error)
	// List returns every category for the calling user. The user id is
	// resolved against the store first.
	List(ctx context.Context, userID int64) ([]domain.CategoryWithProducts, error)
	Get(ctx context.Context, id int64) (*domain.CategoryWithProducts, error)
	Rename(ctx context.Context, id int64, name string) (*domain.CategoryWithProducts, error)
	Patch(ctx context.Context, id int64, in CategoryPatch) (*domain.CategoryWithProducts, error)
	Delete(ctx context.Context, id int64) error
}
