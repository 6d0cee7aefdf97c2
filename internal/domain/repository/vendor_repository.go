package repository

import (
	"context"

	"github.com/nearby-service/internal/domain"
)

// VendorRepository - доступ к хранилищу продавцов
type VendorRepository interface {
	// GetNearby возвращает продавцов в радиусе от точки, ближайшие первыми.
	// Фильтры по статусу и категории - точное совпадение; текстовый поиск
	// сюда сознательно не передаётся и выполняется вызывающей стороной.
	GetNearby(ctx context.Context, lat, lng float64, radius domain.Radius, status, category string, limit int) ([]*domain.Vendor, error)

	GetByID(ctx context.Context, id string) (*domain.Vendor, error)

	// Create присваивает идентификатор и таймстемпы
	Create(ctx context.Context, vendor *domain.Vendor) error

	// Update применяет частичное обновление контентных полей
	Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error)

	// UpdateModeration атомарно применяет патч контентных полей вместе со
	// сменой статуса и полями модерации. Для rejected reason сохраняется,
	// для approved - очищается.
	UpdateModeration(ctx context.Context, id string, patch domain.VendorPatch, status, moderatorID, rejectionReason string) (*domain.Vendor, error)

	// GetByOwner возвращает все заявки пользователя, новые первыми
	GetByOwner(ctx context.Context, userID string) ([]*domain.Vendor, error)

	// GetByStatus возвращает записи с данным статусом, новые первыми.
	// Пустой статус или "all" - все записи.
	GetByStatus(ctx context.Context, status string) ([]*domain.Vendor, error)

	// GetCategories возвращает уникальные категории одобренных продавцов
	GetCategories(ctx context.Context) ([]string, error)

	// FindDuplicate ищет продавца любого статуса в радиусе от точки с
	// похожим именем (подстрока без учёта регистра в любую сторону).
	// Возвращает nil, nil если дубликат не найден.
	FindDuplicate(ctx context.Context, name string, lat, lng, radiusMeters float64) (*domain.Vendor, error)

	IncrementViewCount(ctx context.Context, id string) error
	IncrementClickCount(ctx context.Context, id string) error

	GetAnalytics(ctx context.Context) (*domain.VendorAnalytics, error)
}
