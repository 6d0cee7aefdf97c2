package usecase

import (
	"context"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ModerationUseCase - переходы заявки между статусами pending/approved/rejected.
// Авторизацию (роль admin) обеспечивает middleware, здесь проверяется
// только существование записи.
type ModerationUseCase struct {
	vendorRepo repository.VendorRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
}

func NewModerationUseCase(
	vendorRepo repository.VendorRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *ModerationUseCase {
	return &ModerationUseCase{
		vendorRepo: vendorRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// Approve одобряет заявку: статус approved, штамп модератора, причина
// отклонения очищается. Повторное одобрение уже одобренной записи не
// отклоняется - просто обновляет штамп.
func (uc *ModerationUseCase) Approve(ctx context.Context, vendorID, moderatorID string) (*domain.Vendor, error) {
	vendor, err := uc.vendorRepo.UpdateModeration(
		ctx, vendorID, domain.VendorPatch{},
		domain.StatusApproved, moderatorID, "",
	)
	if err != nil {
		return nil, err
	}

	uc.invalidateCategories(ctx)

	uc.logger.Info("Vendor approved",
		zap.String("id", vendorID),
		zap.String("moderator_id", moderatorID),
	)
	return vendor, nil
}

// Reject отклоняет заявку с необязательной причиной
func (uc *ModerationUseCase) Reject(ctx context.Context, vendorID, moderatorID, reason string) (*domain.Vendor, error) {
	vendor, err := uc.vendorRepo.UpdateModeration(
		ctx, vendorID, domain.VendorPatch{},
		domain.StatusRejected, moderatorID, reason,
	)
	if err != nil {
		return nil, err
	}

	uc.invalidateCategories(ctx)

	uc.logger.Info("Vendor rejected",
		zap.String("id", vendorID),
		zap.String("moderator_id", moderatorID),
	)
	return vendor, nil
}

// EditAndApprove атомарно применяет правки модератора вместе с одобрением:
// либо весь патч и смена статуса, либо ничего
func (uc *ModerationUseCase) EditAndApprove(
	ctx context.Context,
	vendorID, moderatorID string,
	req dto.VendorPatchRequest,
) (*domain.Vendor, error) {
	vendor, err := uc.vendorRepo.UpdateModeration(
		ctx, vendorID, req.ToPatch(),
		domain.StatusApproved, moderatorID, "",
	)
	if err != nil {
		return nil, err
	}

	uc.invalidateCategories(ctx)

	uc.logger.Info("Vendor edited and approved",
		zap.String("id", vendorID),
		zap.String("moderator_id", moderatorID),
	)
	return vendor, nil
}

// ListSubmissions возвращает заявки по статусу, по умолчанию pending.
// Модераторская выдача содержит все поля, включая поля модерации.
func (uc *ModerationUseCase) ListSubmissions(ctx context.Context, status string) ([]*domain.Vendor, error) {
	if status == "" {
		status = domain.StatusPending
	}
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected, "all":
	default:
		return nil, errors.ErrValidation
	}

	return uc.vendorRepo.GetByStatus(ctx, status)
}

// CreateVendor создаёт продавца от имени администратора:
// сразу approved, без модерационного цикла
func (uc *ModerationUseCase) CreateVendor(
	ctx context.Context,
	adminID string,
	req dto.SubmitVendorRequest,
) (*domain.Vendor, error) {
	if req.Location == nil || !utils.ValidateCoordinates(req.Location.Lat, req.Location.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	vendor := newVendorFromRequest(req)
	vendor.Source = domain.SourceAdmin
	vendor.Status = domain.StatusApproved
	vendor.CreatedByUserID = &adminID

	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	uc.invalidateCategories(ctx)

	uc.logger.Info("Vendor created by admin",
		zap.String("id", vendor.ID),
		zap.String("admin_id", adminID),
	)
	return vendor, nil
}

// GetAnalytics возвращает агрегированные счётчики по всем продавцам
func (uc *ModerationUseCase) GetAnalytics(ctx context.Context) (*domain.VendorAnalytics, error) {
	analytics, err := uc.vendorRepo.GetAnalytics(ctx)
	if err != nil {
		uc.logger.Error("Failed to get analytics", zap.Error(err))
		return nil, err
	}
	return analytics, nil
}

// Модерация меняет набор видимых категорий - кеш сбрасывается,
// устаревание на TTL здесь не устраивает админку
func (uc *ModerationUseCase) invalidateCategories(ctx context.Context) {
	if err := uc.cacheRepo.InvalidateCategories(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate categories cache", zap.Error(err))
	}
}
