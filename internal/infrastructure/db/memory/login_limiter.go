package memory

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const maxLimiterKeys = 10000

type window struct {
	key   string
	count int
	end   time.Time
}

// LoginLimiter is a fixed-window attempt counter local to one process.
// Windows are kept in start order, so the oldest one is always at the front
// and is the first to expire or be evicted.
type LoginLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	capacity int
	order    *list.List               // front = oldest window
	windows  map[string]*list.Element // key -> element in order
}

// NewLoginLimiter allows limit attempts per key per window. A non-positive
// limit disables throttling. now may be nil.
func NewLoginLimiter(limit int, win time.Duration, now func() time.Time) *LoginLimiter {
	if win <= 0 {
		win = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &LoginLimiter{
		limit:    limit,
		window:   win,
		now:      now,
		capacity: maxLimiterKeys,
		order:    list.New(),
		windows:  make(map[string]*list.Element),
	}
}

func (l *LoginLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.expire(now)

	el, ok := l.windows[key]
	if !ok {
		for l.order.Len() >= l.capacity {
			l.remove(l.order.Front())
		}
		el = l.order.PushBack(&window{key: key, end: now.Add(l.window)})
		l.windows[key] = el
	}

	w := el.Value.(*window)
	w.count++
	return w.count <= l.limit, nil
}

// Len reports how many keys currently hold an open window.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

// expire drops closed windows from the front. Caller holds l.mu.
func (l *LoginLimiter) expire(now time.Time) {
	for el := l.order.Front(); el != nil; el = l.order.Front() {
		if now.Before(el.Value.(*window).end) {
			return
		}
		l.remove(el)
	}
}

func (l *LoginLimiter) remove(el *list.Element) {
	l.order.Remove(el)
	delete(l.windows, el.Value.(*window).key)
}
