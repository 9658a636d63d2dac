// In file: internal/limiter/limiter.go

// Package limiter is a redis-backed fixed-window request throttle. It fails
// open: when redis is unavailable every request is allowed.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit"

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter allows at most limit requests per key in each window. A nil
// *Limiter allows everything.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a limiter. It returns nil, meaning "unlimited", when rdb is nil
// or limit is not positive.
func New(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	if rdb == nil || limit <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, now: time.Now}
}

// Allow counts one request for key and reports whether it fits the window.
// Redis errors are returned alongside an allowing decision.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l == nil {
		return Decision{Allowed: true}, nil
	}

	now := l.now()
	windowStart := now.Truncate(l.window)
	windowKey := fmt.Sprintf("%s:%s:%d", keyPrefix, key, windowStart.Unix())

	pipe := l.rdb.Pipeline()
	count := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warnf("⚠️ Rate limiter unavailable, allowing request: %v", err)
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit}, fmt.Errorf("rate limit check failed: %w", err)
	}

	n := int(count.Val())
	d := Decision{
		Allowed:   n <= l.limit,
		Limit:     l.limit,
		Remaining: max(0, l.limit-n),
	}
	if !d.Allowed {
		d.RetryAfter = windowStart.Add(l.window).Sub(now)
	}
	return d, nil
}
