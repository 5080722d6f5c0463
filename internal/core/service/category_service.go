package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, users ports.UserRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, users: users, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.CategoryWithProducts, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	created, err := s.categories.Create(ctx, &domain.Category{Name: name})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("category_id", created.ID).Msg("category created")
	return &domain.CategoryWithProducts{Category: *created, Products: []domain.Product{}}, nil
}

// List returns all categories with their products. The caller must still
// exist in the user store; a token for a removed account is treated as
// unauthenticated.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]domain.CategoryWithProducts, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
		return nil, err
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]domain.Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	out := make([]domain.CategoryWithProducts, 0, len(categories))
	for _, c := range categories {
		items := byCategory[c.ID]
		if items == nil {
			items = []domain.Product{}
		}
		out = append(out, domain.CategoryWithProducts{Category: c, Products: items})
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.CategoryWithProducts, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withProducts(ctx, category)
}

// Rename replaces the category name and persists it.
func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (*domain.CategoryWithProducts, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return s.withProducts(ctx, category)
}

func (s *CategoryService) Patch(ctx context.Context, id int64, in ports.CategoryPatch) (*domain.CategoryWithProducts, error) {
	if in.Name == nil {
		return s.Get(ctx, id)
	}
	return s.Rename(ctx, id, *in.Name)
}

// Delete removes an empty category. Categories that still hold products are
// rejected with domain.ErrCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) withProducts(ctx context.Context, c *domain.Category) (*domain.CategoryWithProducts, error) {
	products, err := s.products.FindByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return &domain.CategoryWithProducts{Category: *c, Products: products}, nil
}

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return name, nil
}
