package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// NearbyUseCase - поиск одобренных продавцов вокруг точки
type NearbyUseCase struct {
	vendorRepo repository.VendorRepository
	limits     config.LimitsConfig
	logger     *zap.Logger
}

func NewNearbyUseCase(
	vendorRepo repository.VendorRepository,
	limits config.LimitsConfig,
	logger *zap.Logger,
) *NearbyUseCase {
	return &NearbyUseCase{
		vendorRepo: vendorRepo,
		limits:     limits,
		logger:     logger,
	}
}

// SearchNearby возвращает одобренных продавцов в радиусе от точки,
// отсортированных по возрастанию дистанции
func (uc *NearbyUseCase) SearchNearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	if req.RadiusMeters == 0 {
		req.RadiusMeters = uc.limits.DefaultRadiusMeters
	}
	if !utils.ValidateRadius(req.RadiusMeters) {
		return nil, errors.ErrInvalidRadius
	}
	radius := domain.ParseRadius(req.RadiusMeters)

	if req.Limit <= 0 {
		req.Limit = uc.limits.NearbyLimit
	}

	// Геозапрос забирает кандидатов с запасом: текстовый фильтр нельзя
	// совместить с радиусным предикатом в одном запросе хранилища
	vendors, err := uc.vendorRepo.GetNearby(
		ctx,
		req.Lat, req.Lng,
		radius,
		domain.StatusApproved,
		req.Category,
		uc.limits.NearbyCandidates,
	)
	if err != nil {
		uc.logger.Error("Failed to search nearby vendors",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng),
			zap.Error(err),
		)
		return nil, err
	}

	if search := strings.TrimSpace(req.Search); search != "" {
		vendors = filterBySearchText(vendors, search)
	}

	// Дистанция считается заново от запрошенного центра; сортировка
	// стабильная, при равных дистанциях сохраняется порядок хранилища
	distances := make([]float64, len(vendors))
	for i, v := range vendors {
		distances[i] = utils.HaversineDistance(req.Lat, req.Lng, v.Location.Lat, v.Location.Lng)
	}
	order := make([]int, len(vendors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	if len(order) > req.Limit {
		order = order[:req.Limit]
	}

	result := make([]dto.VendorPublic, 0, len(order))
	for _, idx := range order {
		result = append(result, dto.NewVendorPublicWithDistance(vendors[idx], distances[idx]))
	}

	return &dto.NearbyResponse{Vendors: result}, nil
}

// filterBySearchText оставляет продавцов, у которых подстрока встречается
// в имени, описании или любом из тегов (без учёта регистра)
func filterBySearchText(vendors []*domain.Vendor, search string) []*domain.Vendor {
	needle := strings.ToLower(search)

	filtered := make([]*domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if matchesSearchText(v, needle) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func matchesSearchText(v *domain.Vendor, needle string) bool {
	if strings.Contains(strings.ToLower(v.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Description), needle) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
