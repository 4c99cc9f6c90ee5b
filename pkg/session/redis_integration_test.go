//go:build integration

package session_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ptcdevs/ghlogin/pkg/redis"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func newRedisStore(t *testing.T) *session.RedisStore {
	t.Helper()
	return session.NewRedisStore(newTestRedisClient(t), session.WithRedisPrefix("test-"+t.Name()))
}

func TestRedisStore_CreateGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRedisStore(t)

	s := session.New(time.Hour)
	s.SetValue("redirect_url", "/commits")
	require.NoError(t, r.Create(ctx, s))
	t.Cleanup(func() { _ = r.Delete(ctx, s.ID) })

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.ID, got.ID)
	require.False(t, got.IsNew())
	require.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Millisecond)
	require.Equal(t, "/commits", session.ValueOr(got, "redirect_url", ""))
}

func TestRedisStore_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRedisStore(t)

	_, err := r.Get(ctx, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)
	require.ErrorIs(t, r.Set(ctx, "missing", "k", "v"), session.ErrNotFound)
	_, err = r.Take(ctx, "missing", "k")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRedisStore(t)

	s := session.New(time.Second)
	require.NoError(t, r.Create(ctx, s))

	require.Eventually(t, func() bool {
		_, err := r.Get(ctx, s.ID)
		return err != nil
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedisStore_SetTakeUnset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRedisStore(t)

	s := session.New(time.Hour)
	require.NoError(t, r.Create(ctx, s))
	t.Cleanup(func() { _ = r.Delete(ctx, s.ID) })

	require.NoError(t, r.Set(ctx, s.ID, "state", "xyz"))

	v, err := r.Take(ctx, s.ID, "state")
	require.NoError(t, err)
	require.Equal(t, "xyz", v)

	_, err = r.Take(ctx, s.ID, "state")
	require.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, r.Set(ctx, s.ID, "credential", "T1"))
	require.NoError(t, r.Unset(ctx, s.ID, "credential"))
	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	_, ok := got.GetValue("credential")
	require.False(t, ok)
}

func TestRedisStore_TakeConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRedisStore(t)

	s := session.New(time.Hour)
	s.SetValue("state", "xyz")
	require.NoError(t, r.Create(ctx, s))
	t.Cleanup(func() { _ = r.Delete(ctx, s.ID) })

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			if v, err := r.Take(ctx, s.ID, "state"); err == nil && v == "xyz" {
				wins.Add(1)
			}
		})
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
}
