package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlotRepository stores slot payloads as plain Redis strings under a key prefix
type RedisSlotRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSlotRepository(rdb *redis.Client, prefix string) *RedisSlotRepository {
	return &RedisSlotRepository{rdb: rdb, prefix: prefix}
}

func (r *RedisSlotRepository) key(slot string) string {
	return r.prefix + slot
}

// Get returns the payload stored under key; found is false when the key does not exist
func (r *RedisSlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return payload, true, nil
}

// Set stores payload under key without expiry
func (r *RedisSlotRepository) Set(ctx context.Context, key, payload string) error {
	if err := r.rdb.Set(ctx, r.key(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
