package usecase

import (
	"context"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SubmissionUseCase - путь пользовательской заявки: дневная квота,
// детектор дубликатов, создание записи в статусе pending
type SubmissionUseCase struct {
	vendorRepo    repository.VendorRepository
	rateLimitRepo repository.RateLimitRepository
	limits        config.LimitsConfig
	logger        *zap.Logger
}

func NewSubmissionUseCase(
	vendorRepo repository.VendorRepository,
	rateLimitRepo repository.RateLimitRepository,
	limits config.LimitsConfig,
	logger *zap.Logger,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		vendorRepo:    vendorRepo,
		rateLimitRepo: rateLimitRepo,
		limits:        limits,
		logger:        logger,
	}
}

// Submit создаёт пользовательскую заявку на продавца.
// Заявка от пользователя всегда стартует в статусе pending.
func (uc *SubmissionUseCase) Submit(
	ctx context.Context,
	principal *domain.Principal,
	req dto.SubmitVendorRequest,
) (*domain.Vendor, error) {
	if req.Location == nil || !utils.ValidateCoordinates(req.Location.Lat, req.Location.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	// Проверка квоты до остальной работы: исчерпавший лимит пользователь
	// получает 429 независимо от содержимого заявки
	remaining, err := uc.rateLimitRepo.Remaining(ctx, principal.ID, uc.limits.DailySubmissions)
	if err != nil {
		uc.logger.Error("Failed to check submission quota",
			zap.String("principal_id", principal.ID),
			zap.Error(err),
		)
		return nil, errors.ErrCacheError
	}
	if remaining <= 0 {
		return nil, errors.ErrSubmissionLimit
	}

	// Дубликат не тратит квоту и возвращается заявителю для подтверждения
	duplicate, err := uc.vendorRepo.FindDuplicate(
		ctx,
		req.Name,
		req.Location.Lat, req.Location.Lng,
		uc.limits.DuplicateRadiusMeters,
	)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		uc.logger.Info("Duplicate vendor submission rejected",
			zap.String("name", req.Name),
			zap.String("existing_id", duplicate.ID),
		)
		return nil, errors.ErrDuplicateVendor.WithDetails(map[string]interface{}{
			"duplicate":      true,
			"existingVendor": dto.NewVendorPublic(duplicate),
		})
	}

	// Атомарный инкремент - последняя инстанция против конкурентных заявок
	allowed, err := uc.rateLimitRepo.Consume(ctx, principal.ID, uc.limits.DailySubmissions)
	if err != nil {
		uc.logger.Error("Failed to consume submission quota",
			zap.String("principal_id", principal.ID),
			zap.Error(err),
		)
		return nil, errors.ErrCacheError
	}
	if !allowed {
		return nil, errors.ErrSubmissionLimit
	}

	vendor := newVendorFromRequest(req)
	vendor.Source = domain.SourceUser
	vendor.Status = domain.StatusPending
	vendor.CreatedByUserID = &principal.ID

	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	uc.logger.Info("Vendor submission created",
		zap.String("id", vendor.ID),
		zap.String("principal_id", principal.ID),
	)

	return vendor, nil
}

func newVendorFromRequest(req dto.SubmitVendorRequest) *domain.Vendor {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	hours := req.OpeningHours
	if hours == nil {
		hours = map[string]string{}
	}

	return &domain.Vendor{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Tags:        tags,
		Location: domain.Location{
			Lat: req.Location.Lat,
			Lng: req.Location.Lng,
		},
		Address:      req.Address,
		Phone:        req.Phone,
		OpeningHours: hours,
		Photo:        req.Photo,
	}
}
