package handler

import (
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// --- Request types ---

type productRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  int64   `json:"categoryId" validate:"required,gt=0"`
}

type productPatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryID  *int64   `json:"categoryId" validate:"omitempty,gt=0"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type categoryPatchRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// --- Response types ---

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"categoryId"`
}

type categoryResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Products []productResponse `json:"products"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request → Service input ---

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
	}
}

func (r productPatchRequest) toPatch() ports.ProductPatch {
	return ports.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
	}
}

// --- Domain → Response ---

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
	}
}

func toProductResponses(ps []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCategoryResponse(c domain.CategoryWithProducts) categoryResponse {
	return categoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Products: toProductResponses(c.Products),
	}
}
