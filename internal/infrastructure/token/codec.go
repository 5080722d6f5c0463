// Package token implements the bearer token codec: HS256-signed JWTs carrying
// the username as subject plus the user id and role.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const (
	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 10 * time.Minute

	// MinSecretLength is the smallest HS256 key accepted (256 bits).
	MinSecretLength = 32
)

// Claims is the wire form of the token payload.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single process-wide key. It holds no
// mutable state after construction and is safe for concurrent use.
type Codec struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	method jwt.SigningMethod
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces the time source used for iat/exp and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a Codec from the configured secret. A non-positive ttl
// selects DefaultTTL.
func NewCodec(secret string, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token: secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Codec{
		key:    []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		method: jwt.SigningMethodHS256,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL reports the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for p.
func (c *Codec) Issue(p domain.Principal) (string, error) {
	issuedAt := c.now()
	claims := Claims{
		UserID: p.ID,
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claims. A
// token is expired only once the clock is past exp; at exactly exp it is
// still valid.
func (c *Codec) Verify(raw string) (*domain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", domain.ErrMalformedClaims)
	}
	if c.now().After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expired at %s", domain.ErrTokenExpired, claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
	}

	out := &domain.Claims{
		Subject: claims.Subject,
		UserID:  claims.UserID,
		Role:    claims.Role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	out.ExpiresAt = claims.ExpiresAt.Time
	return out, nil
}

// classify folds jwt parse errors into the domain taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", domain.ErrMalformedHeader, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedClaims, err)
	}
}
