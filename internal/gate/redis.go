package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKey = "notifications:enabled"

// RedisStore keeps the gate in Redis so it survives restarts and is shared
// by every process talking to the same instance.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Enable(ctx context.Context) error {
	// no TTL: the gate stays on until explicitly disabled
	return s.client.Set(ctx, redisKey, "on", 0).Err()
}

func (s *RedisStore) Disable(ctx context.Context) error {
	return s.client.Del(ctx, redisKey).Err()
}

func (s *RedisStore) Enabled(ctx context.Context) (bool, error) {
	err := s.client.Get(ctx, redisKey).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
