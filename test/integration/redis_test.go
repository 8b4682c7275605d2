//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityredis "github.com/trustabee/honey-marketplace/internal/identity/infrastructure/redis"
	"github.com/trustabee/honey-marketplace/internal/notification/domain"
	notifyredis "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/redis"
	shopredis "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/redis"
	"github.com/trustabee/honey-marketplace/pkg/idempotency"
	"github.com/trustabee/honey-marketplace/pkg/idgen"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	opts, err := redis.ParseURL(env.RedisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

func TestRedisSequence(t *testing.T) {
	ctx := context.Background()
	seq := shopredis.NewSequence(newRedis(t))

	for _, want := range []string{"ORD-1001", "ORD-1002"} {
		got, err := seq.Next(ctx, idgen.OrderPrefix)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := seq.Next(ctx, idgen.SamplePrefix)
	require.NoError(t, err)
	assert.Equal(t, "SMP-1001", got)
}

func TestRedisIdempotency(t *testing.T) {
	ctx := context.Background()
	store := idempotency.NewStore(newRedis(t), time.Minute)
	key := idempotency.MessageKey("shop.events", 0, 42)

	seen, err := store.Seen(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = store.Seen(ctx, key)
	require.NoError(t, err)
	assert.True(t, seen)

	require.NoError(t, store.Release(ctx, key))
	seen, err = store.Seen(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisRevocations(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	rev := identityredis.NewRevocations(rdb)

	require.NoError(t, rev.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = rev.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisInbox(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	inbox := notifyredis.NewInbox(rdb, 2, time.Hour)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, inbox.Push(ctx, domain.Notification{ID: id, UserID: "farmer1", Type: domain.TypeOrder}))
	}

	got, err := inbox.List(ctx, "farmer1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	ttl, err := rdb.TTL(ctx, notifyredis.Key("farmer1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
