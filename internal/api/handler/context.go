package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
)

// currentPrincipal returns the caller installed by the authenticator.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p := domain.PrincipalFromContext(c.Request().Context())
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// requireRole is the guard every mutating handler calls first. A denial
// returns before any service call.
func requireRole(c echo.Context, roles ...domain.Role) error {
	return middleware.Authorize(c, roles...)
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
