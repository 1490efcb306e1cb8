package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

type Cache interface {
	Get(ctx context.Context) ([]domain.Category, error)
	Set(ctx context.Context, categories []domain.Category) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

const cacheKey = "register:menu"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context) ([]domain.Category, error) {
	data, err := r.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var categories []domain.Category
	if err2 := json.Unmarshal(data, &categories); err2 != nil {
		return nil, fmt.Errorf("unmarshal menu failed: %w", err2)
	}
	return categories, nil
}

func (r RedisCache) Set(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal menu failed: %w", err)
	}

	// Jitter spreads expiry so registers do not refetch in lockstep.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
