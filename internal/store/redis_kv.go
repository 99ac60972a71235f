package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 200

// RedisKV keeps cache values as plain Redis strings.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV { return &RedisKV{client: client} }

var _ KV = (*RedisKV)(nil)

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := kv.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrMiss
	case err != nil:
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set writes value; ttl 0 keeps the key until it is deleted.
func (kv *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := kv.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := kv.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del (%d keys): %w", len(keys), err)
	}
	return nil
}

// ScanKeys returns every key matching pattern, sorted. SCAN may report a
// key more than once, so results are deduplicated.
func (kv *RedisKV) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	seen := map[string]struct{}{}
	iter := kv.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		seen[iter.Val()] = struct{}{}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", pattern, err)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
