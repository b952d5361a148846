package rest

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Limiter counts requests per key inside a fixed TTL window. It is an
// explicit, injectable component rather than module-level state; counters
// expire on their own, so the map does not grow unbounded.
type Limiter struct {
	limit   int64
	counter *gocache.Cache
}

// NewLimiter allows limit requests per key per window. A limit of zero
// disables throttling.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   int64(limit),
		counter: gocache.New(window, 2*window),
	}
}

func (l *Limiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}
	if err := l.counter.Add(key, int64(1), gocache.DefaultExpiration); err == nil {
		return true
	}
	n, err := l.counter.IncrementInt64(key, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a fresh window.
		l.counter.SetDefault(key, int64(1))
		return true
	}
	return n <= l.limit
}
