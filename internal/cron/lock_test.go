package cron

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	pkgredis "github.com/framehouse-studio/booking-backend/pkg/redis"
)

func newLockClient(t *testing.T) (*pkgredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := pkgredis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisLockIsExclusive(t *testing.T) {
	client, _ := newLockClient(t)
	ctx := context.Background()
	key := client.LockKey("maintenance:test")

	first, err := NewRedisLock(client, key, time.Minute)
	require.NoError(t, err)
	second, err := NewRedisLock(client, key, time.Minute)
	require.NoError(t, err)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, first.Release(ctx))
	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLockReleaseKeepsForeignOwner(t *testing.T) {
	client, mr := newLockClient(t)
	ctx := context.Background()
	key := client.LockKey("maintenance:test")

	stale, err := NewRedisLock(client, key, time.Minute)
	require.NoError(t, err)
	ok, err := stale.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	fresh, err := NewRedisLock(client, key, time.Minute)
	require.NoError(t, err)
	ok, err = fresh.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, stale.Release(ctx))
	require.True(t, mr.Exists(key), "stale holder must not delete the new owner's lock")
}

func TestNewRedisLockValidates(t *testing.T) {
	client, _ := newLockClient(t)
	_, err := NewRedisLock(client, "", time.Minute)
	require.Error(t, err)
	_, err = NewRedisLock(client, "k", 0)
	require.Error(t, err)
}
