package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store holding each key as a prefixed Redis string. Values do
// not expire; the store is the system of record, not a cache.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis wraps an existing client. An empty prefix defaults to
// "storefront" so the demo's keys never collide with the rate limiter.
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "storefront"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (s *Redis) key(k string) string { return s.prefix + ":" + k }

func (s *Redis) Get(ctx context.Context, key string, dest any) error {
	raw, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *Redis) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(key), raw, 0).Err()
}

func (s *Redis) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

// Clear scans for every key under the prefix and deletes them. SCAN keeps
// the operation safe on shared instances where FLUSHDB would be too blunt.
func (s *Redis) Clear(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
