package persistence

import (
	"context"
	"time"
)

// LoginLimiter throttles login attempts per account using a Redis counter
// with a sliding-window TTL.
type LoginLimiter struct {
	redis       *Redis
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter builds a limiter.
func NewLoginLimiter(redis *Redis, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{redis: redis, maxAttempts: maxAttempts, window: window}
}

// Allow counts one attempt for the key and reports whether it is within the
// limit. Infrastructure failures surface as errors; callers decide whether
// to fail open.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.redis == nil || l.redis.Client == nil {
		return true, nil
	}

	redisKey := "login_attempts:" + key
	count, err := l.redis.Client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := l.redis.Client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(l.maxAttempts), nil
}
