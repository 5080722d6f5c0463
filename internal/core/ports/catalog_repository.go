package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
// Lookups and writes on a missing id return domain.ErrCategoryNotFound.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	// Delete removes the category. Returns domain.ErrCategoryInUse when
	// products still reference it.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines persistence operations for products.
// Lookups and writes on a missing id return domain.ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}
