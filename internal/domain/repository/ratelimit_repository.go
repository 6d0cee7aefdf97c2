package repository

import "context"

// RateLimitRepository - суточный лимит заявок на пользователя.
// Счётчик ведётся по календарному дню и должен инкрементироваться атомарно,
// чтобы конкурентные заявки одного пользователя не обходили лимит.
type RateLimitRepository interface {
	// Consume пытается занять одну единицу дневной квоты.
	// Возвращает false, если лимит уже исчерпан.
	Consume(ctx context.Context, principalID string, limit int) (bool, error)

	// Remaining возвращает остаток квоты на текущий день
	Remaining(ctx context.Context, principalID string, limit int) (int, error)
}

// CacheRepository - кеш горячих редко меняющихся данных
type CacheRepository interface {
	GetCategories(ctx context.Context) ([]string, error)
	SetCategories(ctx context.Context, categories []string) error
	InvalidateCategories(ctx context.Context) error
}
