package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(2, time.Minute, func() time.Time { return now })
	ctx := context.Background()

	for i, want := range []bool{true, true, false, false} {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "attempt %d", i+1)
	}

	ok, _ := l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok, "new window resets the count")
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := NewLoginLimiter(0, time.Minute, nil)
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestLoginLimiter_EvictsOldestWhenFull(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(1, time.Minute, func() time.Time { return now })
	l.capacity = 3
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		ok, err := l.Allow(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		now = now.Add(time.Second)
	}

	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok, "a is still inside its window")

	ok, _ = l.Allow(ctx, "d")
	assert.True(t, ok)
	assert.Equal(t, 3, l.Len())

	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok, "a was the oldest window and got evicted")
	assert.Equal(t, 3, l.Len())
}

func TestLoginLimiter_ExpiredWindowsAreDropped(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(5, time.Minute, func() time.Time { return now })
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_, _ = l.Allow(ctx, key)
	}
	require.Equal(t, 3, l.Len())

	now = now.Add(time.Minute)
	_, _ = l.Allow(ctx, "d")
	assert.Equal(t, 1, l.Len())
}
