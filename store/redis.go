package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOffsetStore persists the poll offset in Redis under
// "tgbot:offset:<name>". Any go-redis universal client works: Client,
// ClusterClient or Ring.
type RedisOffsetStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// RedisOffsetStoreConfig configures the Redis store.
type RedisOffsetStoreConfig struct {
	// TTL expires the offset after inactivity; 0 keeps it forever.
	// An expired offset loads as 0, restarting from the oldest
	// retained update, which is safe but re-delivers.
	TTL time.Duration
}

// NewRedisOffsetStore creates an OffsetStore for one bot, keyed by
// name, on an already-connected client.
func NewRedisOffsetStore(client redis.UniversalClient, name string, config ...RedisOffsetStoreConfig) *RedisOffsetStore {
	var cfg RedisOffsetStoreConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	return &RedisOffsetStore{
		client: client,
		key:    fmt.Sprintf("tgbot:offset:%s", name),
		ttl:    cfg.TTL,
	}
}

// Load returns the saved offset, or 0 when none was saved yet.
func (s *RedisOffsetStore) Load(ctx context.Context) (int64, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("load offset %s: %w", s.key, err)
	}

	offset, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("load offset %s: parse %q: %w", s.key, val, err)
	}
	return offset, nil
}

// Save writes the offset, refreshing the TTL when one is configured.
func (s *RedisOffsetStore) Save(ctx context.Context, offset int64) error {
	if err := s.client.Set(ctx, s.key, offset, s.ttl).Err(); err != nil {
		return fmt.Errorf("save offset %s: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisOffsetStore) Close() error {
	return s.client.Close()
}

// Compile-time interface check.
var _ OffsetStore = (*RedisOffsetStore)(nil)
