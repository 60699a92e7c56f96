// Package ratelimiter implements per-identity token buckets.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/playto-dev/playto/shared/logger"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per identity. Buckets idle for
// longer than expiration are dropped by the background cleanup.
type UserRateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	capacity   float64
	expiration time.Duration
	now        func() time.Time
}

func New(rate, capacity float64, expiration time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
	}
}

// Allow takes one token from identity's bucket if available.
func (l *UserRateLimiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[identity] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Cleanup drops buckets not seen within the expiration and returns how many.
func (l *UserRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.expiration)
	removed := 0
	for id, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, id)
			removed++
		}
	}
	return removed
}

func (l *UserRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// StartBackgroundCleanup runs Cleanup every interval until ctx is done.
func (l *UserRateLimiter) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Cleanup(); n > 0 {
					logger.Log.Debug("rate limiter cleanup", "component", "ratelimiter", "removed", n)
				}
			}
		}
	}()
}

// Presets used by the router.
func OnceInSecond() *UserRateLimiter { return New(1, 1, time.Hour) }
func Rps10() *UserRateLimiter        { return New(10, 10, time.Hour) }
func Rps100() *UserRateLimiter       { return New(100, 100, time.Hour) }
