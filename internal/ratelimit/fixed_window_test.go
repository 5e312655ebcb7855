package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newLimiter(t *testing.T, mr *miniredis.Miniredis, limit int) *FixedWindowLimiter {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	fixed := time.Date(2030, 1, 1, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return fixed }
	return l
}

func TestFixedWindowLimiterBlocksAfterLimit(t *testing.T) {
	ctx := context.Background()
	l := newLimiter(t, miniredis.RunT(t), 2)

	if !l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("first request should pass")
	}
	if !l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("second request should pass")
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("third request should be blocked")
	}
	if !l.Allow(ctx, "10.0.0.2") {
		t.Fatalf("keys must be counted separately")
	}
}

func TestFixedWindowLimiterResetsNextWindow(t *testing.T) {
	ctx := context.Background()
	l := newLimiter(t, miniredis.RunT(t), 1)

	if !l.Allow(ctx, "ip") {
		t.Fatalf("first request should pass")
	}
	if l.Allow(ctx, "ip") {
		t.Fatalf("second request should be blocked")
	}

	next := l.now().Add(time.Minute)
	l.now = func() time.Time { return next }
	if !l.Allow(ctx, "ip") {
		t.Fatalf("new window should allow again")
	}
}

func TestFixedWindowLimiterFailsClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 5)
	mr.Close()

	if l.Allow(context.Background(), "ip") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestNewFixedWindowLimiterValidates(t *testing.T) {
	if _, err := NewFixedWindowLimiter(nil, "", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	if _, err := NewFixedWindowLimiter(client, "", 0, time.Second); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}
