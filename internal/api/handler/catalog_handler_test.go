package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

type stubProductService struct {
	ports.ProductService
	created []ports.ProductInput
	patched []ports.ProductPatch
}

func (s *stubProductService) Create(_ context.Context, in ports.ProductInput) (*domain.Product, error) {
	s.created = append(s.created, in)
	return &domain.Product{ID: 1, Name: in.Name, Price: in.Price, CategoryID: in.CategoryID}, nil
}

func (s *stubProductService) Patch(_ context.Context, id int64, in ports.ProductPatch) (*domain.Product, error) {
	s.patched = append(s.patched, in)
	return &domain.Product{ID: id}, nil
}

func withPrincipal(c echo.Context, role domain.Role) {
	req := c.Request()
	c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), domain.Principal{ID: 1, Username: "u", Role: role})))
}

func TestProductHandler_CreateRequiresAdmin(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	c, _ := newJSONContext(http.MethodPost, "/api/products", `{"name":"x","price":1,"categoryId":1}`)
	withPrincipal(c, domain.RoleUser)
	if err := h.Create(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	c, _ = newJSONContext(http.MethodPost, "/api/products", `{"name":"x","price":1,"categoryId":1}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	if len(svc.created) != 0 {
		t.Fatalf("service reached without admin role")
	}

	c, rec := newJSONContext(http.MethodPost, "/api/products", `{"name":"x","price":1,"categoryId":1}`)
	withPrincipal(c, domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || len(svc.created) != 1 {
		t.Fatalf("expected 201 and one create, got %d and %d", rec.Code, len(svc.created))
	}
}

func TestProductHandler_CreateValidation(t *testing.T) {
	svc := &stubProductService{}
	c, _ := newJSONContext(http.MethodPost, "/api/products", `{"name":"","price":-3}`)
	withPrincipal(c, domain.RoleAdmin)

	err := NewProductHandler(svc).Create(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(svc.created) != 0 {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestProductHandler_PatchWithoutCategory(t *testing.T) {
	svc := &stubProductService{}
	c, _ := newJSONContext(http.MethodPatch, "/api/products/4", `{"name":"renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")
	withPrincipal(c, domain.RoleAdmin)

	if err := NewProductHandler(svc).Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := svc.patched[0]
	if got.Name == nil || *got.Name != "renamed" || got.CategoryID != nil || got.Price != nil {
		t.Fatalf("unexpected patch: %+v", got)
	}
}

func TestIDParam(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-2"} {
		c, _ := newJSONContext(http.MethodGet, "/", "")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if _, err := idParam(c); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
