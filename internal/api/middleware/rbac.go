package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/domain"
)

// RequireRoles enforces role-based access control on a route or group.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := Authorize(c, allowed...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Authorize checks the request principal against allowed and records denials.
// Handlers call it directly as a guard before touching any service.
func Authorize(c echo.Context, allowed ...domain.Role) error {
	err := domain.Authorize(domain.PrincipalFromContext(c.Request().Context()), allowed...)
	if err != nil {
		reason := "forbidden"
		if errors.Is(err, domain.ErrUnauthenticated) {
			reason = "unauthenticated"
		}
		metrics.AuthorizationDeniedTotal.WithLabelValues(reason).Inc()
	}
	return err
}
