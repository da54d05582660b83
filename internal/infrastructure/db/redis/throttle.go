package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle limits failed login attempts per email using a Redis
// counter with a sliding expiry. Key format: login_fail:<email>
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginThrottle wraps the given Redis client. Non-positive arguments
// fall back to 5 failures per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxFailures int64, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures, window: window}
}

// TooMany reports whether the subject has exhausted its failed attempts.
func (t *LoginThrottle) TooMany(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure counts one failed attempt and refreshes the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	if err := t.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
		return fmt.Errorf("throttle expire: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_fail:%s", email)
}
