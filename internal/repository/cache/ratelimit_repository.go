package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/nearby-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type rateLimitRepository struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewRateLimitRepository(redis *Redis) repository.RateLimitRepository {
	return &rateLimitRepository{
		client: redis.Client(),
		logger: redis.logger,
		now:    time.Now,
	}
}

// dayKey строит ключ счётчика для календарного дня пользователя.
// Дата берётся по локальному времени сервера, чтобы "один день" совпадал
// со стеночными сутками, а не со скользящим 24-часовым окном.
func dayKey(principalID string, now time.Time) string {
	return fmt.Sprintf("ratelimit:submissions:%s:%s", principalID, now.Format("2006-01-02"))
}

// untilMidnight возвращает время до конца текущих суток
func untilMidnight(now time.Time) time.Duration {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

func (r *rateLimitRepository) Consume(ctx context.Context, principalID string, limit int) (bool, error) {
	now := r.now()
	key := dayKey(principalID, now)

	// INCR атомарен, поэтому конкурентные заявки одного пользователя
	// не могут обойти лимит
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to increment submission counter",
			zap.String("principal_id", principalID),
			zap.Error(err),
		)
		return false, fmt.Errorf("rate limit incr error: %w", err)
	}

	// Первый инкремент за день создаёт ключ - ставим срок жизни до полуночи
	if count == 1 {
		if err := r.client.Expire(ctx, key, untilMidnight(now)).Err(); err != nil {
			r.logger.Warn("Failed to set submission counter expiry",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	if count > int64(limit) {
		return false, nil
	}

	return true, nil
}

func (r *rateLimitRepository) Remaining(ctx context.Context, principalID string, limit int) (int, error) {
	key := dayKey(principalID, r.now())

	count, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return limit, nil
	}
	if err != nil {
		r.logger.Error("Failed to read submission counter",
			zap.String("principal_id", principalID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("rate limit get error: %w", err)
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
