// Package ratelimit holds per-key token buckets that expire when idle.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL = 10 * time.Minute
	cleanupEvery   = time.Minute
)

// Limiter keeps one rate.Limiter per key.
type Limiter struct {
	mu      sync.Mutex
	buckets *cache.Cache
	rps     rate.Limit
	burst   int
}

// New returns a keyed limiter allowing rps requests per second with the given burst.
// A non-positive rps disables limiting.
func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets: cache.New(defaultIdleTTL, cleanupEvery),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Allow reports whether one event for key may happen now.
func (l *Limiter) Allow(key string) bool {
	if l.rps <= 0 {
		return true
	}
	return l.bucket(key).Allow()
}

// RetryAfter is the whole-second wait until the next token for any key.
func (l *Limiter) RetryAfter() int {
	if l.rps <= 0 {
		return 0
	}
	return int(math.Ceil(1 / float64(l.rps)))
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.buckets.Get(key); ok {
		b := v.(*rate.Limiter)
		l.buckets.SetDefault(key, b)
		return b
	}
	b := rate.NewLimiter(l.rps, l.burst)
	l.buckets.SetDefault(key, b)
	return b
}
