package ratelimit

import (
	"context"
	"fmt"
)

const (
	// One attempt every 6 seconds sustained, 10 in a burst.
	loginRate  = 1.0 / 6.0
	loginBurst = 10
)

// LoginLimiter throttles credential attempts per email. Without Redis it
// is a no-op.
type LoginLimiter struct {
	bucket *TokenBucket
}

func NewLoginLimiter(bucket *TokenBucket) *LoginLimiter {
	return &LoginLimiter{bucket: bucket}
}

func (l *LoginLimiter) Allow(ctx context.Context, email string) (*Result, error) {
	if l == nil || l.bucket == nil {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf("login:%s", email), loginRate, loginBurst)
}
