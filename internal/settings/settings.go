// Package settings persists the register's configuration flags. Today there
// is a single flag: whether the table number is asked for at the register.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// TableInputEnabled reports whether submitting an order requires a
	// table number. Defaults to true when never set.
	TableInputEnabled(ctx context.Context) (bool, error)
	SetTableInputEnabled(ctx context.Context, enabled bool) error
}

const tableInputKey = "register:settings:enableTableInput"

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type RedisStore struct {
	client *redis.Client
}

func (s *RedisStore) TableInputEnabled(ctx context.Context) (bool, error) {
	value, err := s.client.Get(ctx, tableInputKey).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("redis get failed: %w", err)
	}
	return value == "1", nil
}

func (s *RedisStore) SetTableInputEnabled(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	if err := s.client.Set(ctx, tableInputKey, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
