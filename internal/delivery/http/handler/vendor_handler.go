package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nearby-service/internal/delivery/http/middleware"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/pkg/validator"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// VendorHandler - публичные и пользовательские endpoints продавцов
type VendorHandler struct {
	nearbyUC     *usecase.NearbyUseCase
	vendorUC     *usecase.VendorUseCase
	submissionUC *usecase.SubmissionUseCase
	logger       *zap.Logger
}

func NewVendorHandler(
	nearbyUC *usecase.NearbyUseCase,
	vendorUC *usecase.VendorUseCase,
	submissionUC *usecase.SubmissionUseCase,
	logger *zap.Logger,
) *VendorHandler {
	return &VendorHandler{
		nearbyUC:     nearbyUC,
		vendorUC:     vendorUC,
		submissionUC: submissionUC,
		logger:       logger,
	}
}

// GetNearby - поиск одобренных продавцов рядом с точкой
// @Summary Поиск продавцов рядом с точкой
// @Description Возвращает одобренных продавцов в радиусе от точки с дистанцией в метрах, ближайшие первыми. Поддерживает фильтр по категории и текстовый поиск по имени, описанию и тегам.
// @Tags Vendors
// @Produce json
// @Param lat query number true "Широта (-90..90)"
// @Param lng query number true "Долгота (-180..180)"
// @Param radius query number false "Радиус поиска в метрах" default(3000)
// @Param category query string false "Точное совпадение категории"
// @Param search query string false "Текстовый фильтр"
// @Success 200 {object} dto.NearbyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /vendors/nearby [get]
func (h *VendorHandler) GetNearby(c *fiber.Ctx) error {
	lat, errLat := parseFloatQuery(c, "lat")
	lng, errLng := parseFloatQuery(c, "lng")
	if errLat != nil || errLng != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	radius := c.QueryFloat("radius", 0)
	if c.Query("radius") != "" && radius <= 0 {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}

	req := dto.NearbyRequest{
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: radius,
		Category:     c.Query("category"),
		Search:       c.Query("search"),
	}

	result, err := h.nearbyUC.SearchNearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// GetByID - карточка продавца
// @Summary Карточка продавца
// @Description Возвращает продавца по идентификатору и увеличивает счётчик просмотров. Неодобренные записи видны только их автору, остальным отдаётся 404.
// @Tags Vendors
// @Produce json
// @Param id path string true "Идентификатор продавца"
// @Success 200 {object} dto.VendorPublic
// @Failure 404 {object} utils.ErrorResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.vendorUC.GetByID(c.Context(), c.Params("id"), principal)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendor": dto.NewVendorPublic(vendor),
	})
}

// Submit - пользовательская заявка на добавление продавца
// @Summary Заявка на добавление продавца
// @Description Создаёт заявку в статусе pending. Не больше пяти заявок от пользователя в календарный день; похожее имя в пределах 50 метров отклоняется как дубликат с возвратом существующей записи.
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body dto.SubmitVendorRequest true "Данные продавца"
// @Success 201 {object} dto.VendorPublic
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /vendors/user-submissions [post]
func (h *VendorHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.submissionUC.Submit(c.Context(), principal, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"vendor":  dto.NewVendorPublic(vendor),
		"message": "Vendor submitted successfully. It will go live after review.",
	})
}

// GetMySubmissions - заявки текущего пользователя
// @Summary Мои заявки
// @Description Возвращает все заявки текущего пользователя независимо от статуса, новые первыми
// @Tags Vendors
// @Produce json
// @Success 200 {array} domain.Vendor
// @Failure 401 {object} utils.ErrorResponse
// @Router /vendors/my-submissions [get]
func (h *VendorHandler) GetMySubmissions(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)

	vendors, err := h.vendorUC.GetMySubmissions(c.Context(), principal)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendors": vendors,
	})
}

// GetCategories - категории одобренных продавцов
// @Summary Список категорий
// @Description Возвращает уникальные категории среди одобренных продавцов
// @Tags Vendors
// @Produce json
// @Success 200 {array} string
// @Router /vendors/categories/list [get]
func (h *VendorHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.vendorUC.GetCategories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// RegisterClick - счётчик кликов для аналитики
// @Summary Клик по карточке
// @Description Увеличивает счётчик кликов. Несуществующий продавец молча игнорируется.
// @Tags Vendors
// @Produce json
// @Param id path string true "Идентификатор продавца"
// @Success 200 {object} fiber.Map
// @Router /vendors/{id}/click [post]
func (h *VendorHandler) RegisterClick(c *fiber.Ctx) error {
	if err := h.vendorUC.RegisterClick(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
