package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// BearerPrefix is matched case-sensitively, including the trailing space.
const BearerPrefix = "Bearer "

const authenticatedKey = "authenticator.done"

// Authenticate resolves the bearer token, if any, into a principal on the
// request context.
//
// Requests without an Authorization header, or whose header does not start
// with BearerPrefix, continue anonymously. A bearer token that fails
// verification stops the chain; the domain error is returned unwritten so the
// echo HTTPErrorHandler renders it. The middleware runs at most once per
// request even if registered on nested groups.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if done, _ := c.Get(authenticatedKey).(bool); done {
				return next(c)
			}
			c.Set(authenticatedKey, true)

			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), BearerPrefix)
			if !ok {
				return next(c)
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return reject(domain.ErrMalformedHeader)
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return reject(err)
			}
			principal, err := domain.PrincipalFromClaims(*claims)
			if err != nil {
				return reject(err)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), principal)))
			return next(c)
		}
	}
}

func reject(err error) error {
	metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrMalformedClaims):
		return "malformed_claims"
	default:
		return "malformed"
	}
}
