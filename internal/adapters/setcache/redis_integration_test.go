//go:build integration

package setcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.trai.ch/ikon/internal/adapters/setcache"
	"go.trai.ch/ikon/internal/core/domain"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return url
}

func TestRedis(t *testing.T) {
	url := startRedis(t)

	runCacheContract(t, func(t *testing.T, ttl time.Duration) clocked {
		t.Helper()
		c, err := setcache.NewRedis(t.Context(), url, ttl)
		require.NoError(t, err)

		opts, err := redis.ParseURL(url)
		require.NoError(t, err)
		flush := redis.NewClient(opts)
		require.NoError(t, flush.FlushAll(t.Context()).Err())
		require.NoError(t, flush.Close())

		t.Cleanup(func() { _ = c.Close() })
		return c
	})
}

func TestRedis_KeyExpires(t *testing.T) {
	url := startRedis(t)
	ctx := t.Context()

	c, err := setcache.NewRedis(ctx, url, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Put(ctx, mdi, chunk("home")))

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ttl, err := client.TTL(ctx, "ikon:set::mdi").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestRedis_ConnectFailure(t *testing.T) {
	_, err := setcache.NewRedis(t.Context(), "redis://127.0.0.1:1", time.Hour)
	require.ErrorContains(t, err, domain.ErrCacheConnectFailed.Error())
}
