package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lines := []Line{
		{ID: "a", ProductID: "p1", UserID: "user-1", Quantity: 2, Size: SizeM,
			Snapshot: Snapshot{Name: "Gamis Khadijah", Price: 150000}},
	}
	require.NoError(t, cache.Set(context.Background(), "user-1", lines))

	got, err := cache.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, lines[0].ID, got[0].ID)
	assert.Equal(t, lines[0].Snapshot.Price, got[0].Snapshot.Price)
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "user-1", []Line{{ID: "a"}}))
	require.NoError(t, cache.Delete(context.Background(), "user-1"))

	_, err := cache.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "user-1", []Line{{ID: "a"}}))

	// past base TTL plus maximum jitter
	mr.FastForward(21 * time.Minute)

	_, err := cache.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_CorruptPayload(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set("cart:user-1", "not json"))

	_, err := cache.Get(context.Background(), "user-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
