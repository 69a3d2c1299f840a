package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/romandfa/pkg/adapters/redis"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/aretw0/romandfa/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunVerdictStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	rec := &domain.Record{ID: "abc", Verdict: domain.Accepted("V", 5, nil), CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, rec))

	assert.True(t, mr.Exists("test:abc"))
	assert.True(t, mr.Exists("test:index"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"abc"))
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Now()
	clock := now
	store := redis.NewFromClient(client,
		redis.WithTTL(1*time.Second),
		redis.WithClock(func() time.Time { return clock }),
	)
	ctx := context.Background()

	rec := &domain.Record{ID: "rec-ttl", Verdict: domain.Accepted("X", 10, nil), CreatedAt: now}

	// 1. Save
	require.NoError(t, store.Save(ctx, rec))

	// 2. Verify List (immediately)
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "rec-ttl")

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)
	clock = now.Add(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, "rec-ttl")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	// 5. Verify List (lazily cleaned up)
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))

	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "failed to unmarshal record")
}
