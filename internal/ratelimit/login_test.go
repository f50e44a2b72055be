package ratelimit

import (
	"context"
	"testing"
)

func TestLoginLimiterNilSafe(t *testing.T) {
	var limiter *LoginLimiter

	res, err := limiter.Allow(context.Background(), "a@b.test")
	if err != nil {
		t.Fatalf("Allow on nil limiter: %v", err)
	}
	if !res.Allowed {
		t.Fatal("nil limiter must allow every attempt")
	}
}

func TestLoginLimiterWithoutBucket(t *testing.T) {
	limiter := NewLoginLimiter(nil)

	res, err := limiter.Allow(context.Background(), "a@b.test")
	if err != nil {
		t.Fatalf("Allow without bucket: %v", err)
	}
	if !res.Allowed {
		t.Fatal("limiter without a bucket must allow every attempt")
	}
}
