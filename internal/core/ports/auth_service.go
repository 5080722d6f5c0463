package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// TokenCodec issues and verifies signed, time-bounded bearer tokens.
type TokenCodec interface {
	Issue(p domain.Principal) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// TokenVerifier is the read side of TokenCodec, which is all the request
// authenticator needs.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	Principal domain.Principal
}

type AuthService interface {
	Signup(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Authenticate(ctx context.Context, username, password string) (domain.Principal, error)
}
