package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := NewFromAddr(srv.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestSetNXOnlyFirstWins(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	key := client.IdempotencyKey("stripe_webhook", "evt_1")

	first, err := client.SetNX(ctx, key, "1", time.Hour)
	if err != nil || !first {
		t.Fatalf("expected first SetNX to win, got %v %v", first, err)
	}
	second, err := client.SetNX(ctx, key, "1", time.Hour)
	if err != nil || second {
		t.Fatalf("expected second SetNX to lose, got %v %v", second, err)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := client.Get(ctx, key); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestFixedWindowAllow(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
		if err != nil {
			t.Fatalf("FixedWindowAllow: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected count %d, got %d", i, count)
		}
		if wantAllowed := i <= 2; allowed != wantAllowed {
			t.Fatalf("call %d: expected allowed=%v", i, wantAllowed)
		}
	}

	if ttl := srv.TTL(client.RateLimitKey("login:ip:1.2.3.4")); ttl != time.Minute {
		t.Fatalf("expected window ttl 1m, got %v", ttl)
	}

	srv.FastForward(time.Minute + time.Second)
	allowed, count, err := client.FixedWindowAllow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
	if err != nil || !allowed || count != 1 {
		t.Fatalf("expected window reset, got allowed=%v count=%d err=%v", allowed, count, err)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("http", " abc "); got != "fh:idempotency:http:abc" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.AccessSessionKey("jti-1"); got != "fh:session:access:jti-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	c := &Client{}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
}
