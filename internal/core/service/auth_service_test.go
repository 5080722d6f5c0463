package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// plainHasher prefixes instead of hashing and records comparisons.
type plainHasher struct {
	compares int
	compared []string
	hashErr  error
}

func (h *plainHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h *plainHasher) Compare(hash, plain string) bool {
	h.compares++
	h.compared = append(h.compared, hash)
	return hash == "hashed:"+plain
}

type stubCodec struct {
	issued []domain.Principal
	err    error
}

func (c *stubCodec) Issue(p domain.Principal) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.issued = append(c.issued, p)
	return "token-for-" + p.Username, nil
}

func (c *stubCodec) Verify(string) (*domain.Claims, error) { return nil, domain.ErrMalformedHeader }

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo, *plainHasher, *stubCodec) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := &plainHasher{}
	codec := &stubCodec{}
	svc, err := NewAuthService(repo, hasher, codec, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService returned error: %v", err)
	}
	return svc, repo, hasher, codec
}

func TestNewAuthService_FailsWithoutDummyHash(t *testing.T) {
	boom := errors.New("entropy unavailable")
	_, err := NewAuthService(newStubUserRepo(), &plainHasher{hashErr: boom}, &stubCodec{}, zerolog.Nop())
	if !errors.Is(err, boom) {
		t.Fatalf("expected hash error, got %v", err)
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	user, err := svc.Signup(context.Background(), "alice", "pass123", "admin")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Signup_DefaultsRole(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	for i, role := range []string{"", "superuser", "user"} {
		name := strings.Repeat("u", i+1)
		user, err := svc.Signup(context.Background(), name, "pass", role)
		if err != nil {
			t.Fatalf("Signup(%q) returned error: %v", role, err)
		}
		if user.Role != domain.RoleUser {
			t.Fatalf("Signup(%q) role = %s, want USER", role, user.Role)
		}
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	if _, err := svc.Signup(context.Background(), "", "pass", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "bob", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, _ = svc.Signup(context.Background(), "bob", "pass", "")
	if _, err := svc.Signup(context.Background(), "bob", "pass2", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, codec := newTestAuthService(t)

	created, err := svc.Signup(context.Background(), "carol", "s3cret", "ADMIN")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token != "token-for-carol" {
		t.Fatalf("unexpected token: %q", res.Token)
	}
	want := domain.Principal{ID: created.ID, Username: "carol", Role: domain.RoleAdmin}
	if res.Principal != want {
		t.Fatalf("unexpected principal: %+v", res.Principal)
	}
	if len(codec.issued) != 1 || codec.issued[0] != want {
		t.Fatalf("codec not called with principal: %+v", codec.issued)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _, codec := newTestAuthService(t)

	_, _ = svc.Signup(context.Background(), "dave", "goodpass", "")
	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(codec.issued) != 0 {
		t.Fatalf("no token should be issued")
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc, _, hasher, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if hasher.compares != 1 {
		t.Fatalf("expected a dummy comparison for unknown user, got %d", hasher.compares)
	}
	if hasher.compared[0] != "hashed:"+dummyPassword {
		t.Fatalf("unknown user compared against %q, want the dummy hash", hasher.compared[0])
	}
}

func TestAuthService_Signup_PasswordByteLimit(t *testing.T) {
	svc, repo, _, _ := newTestAuthService(t)

	// 40 two-byte runes: 80 bytes.
	_, err := svc.Signup(context.Background(), "zoe", strings.Repeat("é", 40), "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be stored")
	}

	if _, err := svc.Signup(context.Background(), "zoe", strings.Repeat("é", 36), ""); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	svc, repo, _, _ := newTestAuthService(t)
	boom := errors.New("connection reset")
	repo.err = boom

	_, err := svc.Login(context.Background(), "erin", "pass")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("infrastructure failure must not look like bad credentials")
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
