package cache

import (
	"context"
	"fmt"
	"time"
)

// Counter increments a counter that expires after window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimiter allows Limit requests per user in each fixed window.
type RateLimiter struct {
	counter Counter
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a fixed window limiter. Keys look like
// prefix:user:windowStart.
func NewRateLimiter(counter Counter, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, prefix: prefix, limit: limit, window: window, now: time.Now}
}

// Allow counts one request for userID.
func (l *RateLimiter) Allow(ctx context.Context, userID string) (Decision, error) {
	windowStart := l.now().Truncate(l.window)
	key := fmt.Sprintf("%s:%s:%d", l.prefix, userID, windowStart.Unix())

	count, err := l.counter.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   int(count) <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		Reset:     windowStart.Add(l.window),
	}, nil
}

// Window is the length of one rate limit window.
func (l *RateLimiter) Window() time.Duration {
	return l.window
}
