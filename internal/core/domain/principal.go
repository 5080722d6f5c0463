package domain

import (
	"context"
	"slices"
	"time"
)

// Principal is the authenticated identity attached to a single request.
// It is rebuilt from token claims on every request and never persisted.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Claims is the decoded payload of a verified token.
type Claims struct {
	Subject   string
	UserID    int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PrincipalFromClaims maps verified claims onto a Principal without touching
// the store.
func PrincipalFromClaims(c Claims) (Principal, error) {
	role, ok := ParseRole(c.Role)
	if !ok || c.Subject == "" || c.UserID <= 0 {
		return Principal{}, ErrMalformedClaims
	}
	return Principal{ID: c.UserID, Username: c.Subject, Role: role}, nil
}

// Authorize is the role gate. A nil principal is unauthenticated; a principal
// whose role is not in allowed is forbidden.
func Authorize(p *Principal, allowed ...Role) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !slices.Contains(allowed, p.Role) {
		return ErrForbidden
	}
	return nil
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal installed for this request, or
// nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return nil
	}
	return &p
}
