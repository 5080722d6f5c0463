package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// dummyPassword is hashed once at construction so that a login for an unknown
// username still pays for a full hash comparison.
const dummyPassword = "catalog-api-dummy-password"

// maxPasswordBytes is bcrypt's input limit. It counts bytes, not runes.
const maxPasswordBytes = 72

// AuthService implements signup, credential verification and login.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	codec     ports.TokenCodec
	logger    zerolog.Logger
	dummyHash string
	now       func() time.Time
}

// NewAuthService precomputes the hash compared against for unknown usernames
// and fails if it cannot.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("precompute dummy password hash: %w", err)
	}
	if dummy == "" {
		return nil, errors.New("precompute dummy password hash: empty hash")
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		codec:     codec,
		logger:    logger,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

// Signup stores a new account. The requested role is parsed leniently and
// falls back to USER.
func (s *AuthService) Signup(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleFromSignup(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Principal, error) {
	if username == "" || password == "" {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Compare(s.dummyHash, password)
		s.logger.Debug().Str("reason", "unknown_user").Msg("authentication failed")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Debug().Str("reason", "bad_password").Int64("user_id", user.ID).Msg("authentication failed")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return user.Principal(), nil
}

// Login authenticates and issues a bearer token for the principal.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	principal, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(principal)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, Principal: principal}, nil
}
