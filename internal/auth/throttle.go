package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignInThrottle locks out sign-in for an email after repeated failed
// attempts within a window. Counters live in Redis so the lockout survives
// restarts. Redis trouble fails open: counting stops, sign-in keeps working.
type SignInThrottle struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewSignInThrottle constructs a throttle allowing max failures per window.
func NewSignInThrottle(client *redis.Client, max int, window time.Duration) *SignInThrottle {
	return &SignInThrottle{client: client, max: int64(max), window: window}
}

func failureKey(email string) string {
	return "signin:failures:" + email
}

// Blocked reports whether the email has reached the failure limit.
func (t *SignInThrottle) Blocked(ctx context.Context, email string) bool {
	if t == nil {
		return false
	}
	count, err := t.client.Get(ctx, failureKey(email)).Int64()
	if err != nil {
		return false
	}
	return count >= t.max
}

// RecordFailure counts one failed attempt against the email.
func (t *SignInThrottle) RecordFailure(ctx context.Context, email string) {
	if t == nil {
		return
	}
	key := failureKey(email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		t.client.Expire(ctx, key, t.window)
	}
}

// Reset clears the failure counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, email string) {
	if t == nil {
		return
	}
	t.client.Del(ctx, failureKey(email))
}
