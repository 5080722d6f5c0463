package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
// Lookups return domain.ErrUserNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// PasswordHasher is the one-way, salted hashing capability used for credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// LoginLimiter throttles credential attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
