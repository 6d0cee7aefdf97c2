package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nearby-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const categoriesKey = "vendors:categories"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewCacheRepository(redis *Redis, ttl time.Duration) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

// GetCategories возвращает закешированный список категорий.
// nil без ошибки означает cache miss.
func (r *cacheRepository) GetCategories(ctx context.Context) ([]string, error) {
	data, err := r.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get categories from cache", zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		r.logger.Error("Failed to unmarshal cached categories", zap.Error(err))
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}

	r.logger.Debug("Categories cache hit")
	return categories, nil
}

func (r *cacheRepository) SetCategories(ctx context.Context, categories []string) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	if err := r.client.Set(ctx, categoriesKey, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to cache categories", zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Categories cached", zap.Duration("ttl", r.ttl))
	return nil
}

// InvalidateCategories сбрасывает кеш после модерации, меняющей набор
// видимых категорий
func (r *cacheRepository) InvalidateCategories(ctx context.Context) error {
	if err := r.client.Del(ctx, categoriesKey).Err(); err != nil {
		r.logger.Error("Failed to invalidate categories cache", zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
