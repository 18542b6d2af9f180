package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKey is the Redis key holding the API key.
const RedisKey = "wanderbot:" + KeyName

// RedisStore keeps the key in Redis without expiry.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	key, err := s.redis.Get(ctx, RedisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential: redis get: %w", err)
	}
	return key, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.redis.Set(ctx, RedisKey, key, 0).Err(); err != nil {
		return fmt.Errorf("credential: redis set: %w", err)
	}
	return nil
}
