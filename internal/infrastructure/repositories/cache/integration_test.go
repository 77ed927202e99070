//go:build integration

package cache

import (
	"btc-rate-monitor/internal/domain/apperr"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

func TestRedisStore_Integration(t *testing.T) {
	ctx := context.Background()
	uri := startRedis(t)

	store, err := Connect(ctx, RedisConfig{Addr: uri, RetryDelay: 100 * time.Millisecond})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	_, found, err := store.Get(ctx, "bitcoin_exchange_price")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "bitcoin_exchange_price", `{"time":"t","rate":50000}`, 2*time.Second))
	value, found, err := store.Get(ctx, "bitcoin_exchange_price")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"time":"t","rate":50000}`, value)

	time.Sleep(2500 * time.Millisecond)
	_, found, err = store.Get(ctx, "bitcoin_exchange_price")
	require.NoError(t, err)
	assert.False(t, found, "entry must expire after its ttl")
}

func TestRedisStore_WrongTypeIsAbsent(t *testing.T) {
	ctx := context.Background()
	uri := startRedis(t)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	raw := redis.NewClient(opts)
	defer raw.Close()
	require.NoError(t, raw.LPush(ctx, "bitcoin_exchange_price", "x").Err())

	store, err := Connect(ctx, RedisConfig{Addr: uri})
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get(ctx, "bitcoin_exchange_price")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConnect_UnreachableIntegration(t *testing.T) {
	_, err := Connect(context.Background(), RedisConfig{Addr: "127.0.0.1:1", RetryDelay: 10 * time.Millisecond})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConnection))
}
