package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, config ...RedisOffsetStoreConfig) (*RedisOffsetStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisOffsetStore(client, "testbot", config...)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisOffsetStore_LoadWithoutSaveReturnsZero(t *testing.T) {
	s, _ := newRedisStore(t)

	offset, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)
}

func TestRedisOffsetStore_SaveLoadRoundtrip(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, 1042))

	offset, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1042), offset)

	// Overwrites, including backwards for replay.
	require.NoError(t, s.Save(ctx, 7))
	offset, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), offset)
}

func TestRedisOffsetStore_KeysAreScopedByName(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	a := NewRedisOffsetStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "bot-a")
	defer a.Close()
	b := NewRedisOffsetStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "bot-b")
	defer b.Close()

	require.NoError(t, a.Save(ctx, 100))
	require.NoError(t, b.Save(ctx, 200))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)

	got, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got)
}

func TestRedisOffsetStore_TTLExpiresToZero(t *testing.T) {
	s, mr := newRedisStore(t, RedisOffsetStoreConfig{TTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, 55))

	offset, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(55), offset)

	mr.FastForward(2 * time.Minute)

	offset, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset, "an expired offset should load as 0")
}

func TestRedisOffsetStore_CorruptValueSurfacesError(t *testing.T) {
	s, mr := newRedisStore(t)

	mr.Set("tgbot:offset:testbot", "not-a-number")

	_, err := s.Load(context.Background())
	require.Error(t, err)
}
