package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
)

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func throttleContext() echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestThrottleLogin(t *testing.T) {
	cases := []struct {
		name       string
		limiter    *stubLimiter
		wantCalled bool
		wantErr    error
	}{
		{"within limit", &stubLimiter{allow: true}, true, nil},
		{"over limit", &stubLimiter{allow: false}, false, domain.ErrTooManyAttempts},
		{"limiter down", &stubLimiter{err: errors.New("redis down")}, true, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			err := ThrottleLogin(tc.limiter, zerolog.Nop())(func(echo.Context) error {
				called = true
				return nil
			})(throttleContext())

			if called != tc.wantCalled {
				t.Fatalf("called = %v, want %v", called, tc.wantCalled)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if len(tc.limiter.keys) != 1 || tc.limiter.keys[0] != "192.0.2.10" {
				t.Fatalf("unexpected limiter keys: %v", tc.limiter.keys)
			}
		})
	}
}
