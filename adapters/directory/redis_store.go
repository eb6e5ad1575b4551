package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the shared listing
const DefaultRedisKey = "directory:account-managers"

// RedisStore shares the listing between server instances
type RedisStore struct {
	redis *redis.Client
	key   string
}

// NewRedisStore creates a store under DefaultRedisKey
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client, key: DefaultRedisKey}
}

// Get returns the stored listing or ErrCacheMiss
func (s *RedisStore) Get(ctx context.Context) ([]string, error) {
	data, err := s.redis.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get directory: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal cached directory: %w", err)
	}
	return names, nil
}

// Set stores names for ttl; a non-positive ttl disables the write
func (s *RedisStore) Set(ctx context.Context, names []string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal directory for cache: %w", err)
	}

	if err := s.redis.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set directory: %w", err)
	}
	return nil
}
