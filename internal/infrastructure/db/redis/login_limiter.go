package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript increments the attempt counter and starts the window on the
// first hit, in one round trip.
var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// LoginLimiter is a fixed-window attempt counter shared by every API replica.
// Key format: login:<key>
type LoginLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

// NewLoginLimiter allows limit attempts per key per window. A non-positive limit
// disables throttling.
func NewLoginLimiter(client redis.Scripter, limit int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	current, err := allowScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("login limiter: %w", err)
	}
	return current <= int64(l.limit), nil
}

func (l *LoginLimiter) key(k string) string {
	return "login:" + k
}
