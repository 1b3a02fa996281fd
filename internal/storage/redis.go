package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "menu:document:"

// RedisStore keeps each document under a single string key.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Read(ctx context.Context, location string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+location).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return data, nil
}

// Write replaces the whole value; SET is atomic so readers never see a partial document.
func (s *RedisStore) Write(ctx context.Context, location string, document []byte) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+location, document, 0).Err(); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}
