package usecase

import (
	"context"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// VendorUseCase - чтение карточек продавцов и сопутствующие side-эффекты
type VendorUseCase struct {
	vendorRepo repository.VendorRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
}

func NewVendorUseCase(
	vendorRepo repository.VendorRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *VendorUseCase {
	return &VendorUseCase{
		vendorRepo: vendorRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// GetByID возвращает карточку продавца с учётом политики видимости и
// инкрементирует счётчик просмотров. Невидимая чужая заявка отдаётся
// как "не найдено", чтобы не раскрывать её существование.
func (uc *VendorUseCase) GetByID(ctx context.Context, id string, principal *domain.Principal) (*domain.Vendor, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsVisible(vendor, principal) {
		return nil, errors.ErrVendorNotFound
	}

	// Потерянный инкремент при гонке допустим, счётчик не критичен
	if err := uc.vendorRepo.IncrementViewCount(ctx, id); err != nil {
		uc.logger.Warn("Failed to increment view count", zap.String("id", id), zap.Error(err))
	} else {
		vendor.ViewCount++
	}

	return vendor, nil
}

// GetMySubmissions возвращает все заявки пользователя независимо от статуса
func (uc *VendorUseCase) GetMySubmissions(ctx context.Context, principal *domain.Principal) ([]*domain.Vendor, error) {
	return uc.vendorRepo.GetByOwner(ctx, principal.ID)
}

// GetCategories возвращает категории одобренных продавцов, кеш с TTL
func (uc *VendorUseCase) GetCategories(ctx context.Context) ([]string, error) {
	if cached, err := uc.cacheRepo.GetCategories(ctx); err == nil && cached != nil {
		return cached, nil
	}

	categories, err := uc.vendorRepo.GetCategories(ctx)
	if err != nil {
		uc.logger.Error("Failed to get vendor categories", zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.SetCategories(ctx, categories); err != nil {
		uc.logger.Warn("Failed to cache categories", zap.Error(err))
	}

	return categories, nil
}

// RegisterClick инкрементирует счётчик кликов. Отсутствие продавца не
// считается ошибкой - клик по устаревшей карточке просто игнорируется.
func (uc *VendorUseCase) RegisterClick(ctx context.Context, id string) error {
	if err := uc.vendorRepo.IncrementClickCount(ctx, id); err != nil {
		uc.logger.Warn("Failed to increment click count", zap.String("id", id), zap.Error(err))
	}
	return nil
}
