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

// AdminHandler - модерация заявок и административное управление продавцами
type AdminHandler struct {
	moderationUC *usecase.ModerationUseCase
	logger       *zap.Logger
}

func NewAdminHandler(moderationUC *usecase.ModerationUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		moderationUC: moderationUC,
		logger:       logger,
	}
}

// ListSubmissions - заявки на модерацию
// @Summary Заявки на модерацию
// @Description Возвращает заявки с данным статусом (pending, approved, rejected или all), по умолчанию pending. Выдача содержит поля модерации.
// @Tags Admin
// @Produce json
// @Param status query string false "Статус заявок" default(pending)
// @Success 200 {array} domain.Vendor
// @Failure 400 {object} utils.ErrorResponse
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	vendors, err := h.moderationUC.ListSubmissions(c.Context(), c.Query("status"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendors": vendors,
	})
}

// Approve - одобрение заявки
// @Summary Одобрить заявку
// @Description Переводит заявку в approved, штампует модератора и очищает причину отклонения
// @Tags Admin
// @Produce json
// @Param id path string true "Идентификатор продавца"
// @Success 200 {object} domain.Vendor
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/submissions/{id}/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.moderationUC.Approve(c.Context(), c.Params("id"), principal.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendor":  vendor,
		"message": "Vendor approved successfully",
	})
}

// Reject - отклонение заявки
// @Summary Отклонить заявку
// @Description Переводит заявку в rejected с необязательной причиной
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор продавца"
// @Param request body dto.RejectRequest false "Причина отклонения"
// @Success 200 {object} domain.Vendor
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/submissions/{id}/reject [post]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectRequest
	// Тело необязательно - отклонение без причины допустимо
	_ = c.BodyParser(&req)

	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.moderationUC.Reject(c.Context(), c.Params("id"), principal.ID, req.Reason)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendor":  vendor,
		"message": "Vendor rejected",
	})
}

// EditAndApprove - правка и одобрение одним действием
// @Summary Править и одобрить
// @Description Атомарно применяет переданные поля и переводит заявку в approved. Непереданные поля не меняются, явно переданные пустые значения применяются.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор продавца"
// @Param request body dto.VendorPatchRequest true "Изменяемые поля"
// @Success 200 {object} domain.Vendor
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/submissions/{id} [put]
func (h *AdminHandler) EditAndApprove(c *fiber.Ctx) error {
	var req dto.VendorPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.moderationUC.EditAndApprove(c.Context(), c.Params("id"), principal.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fiber.Map{
		"vendor":  vendor,
		"message": "Vendor updated and approved",
	})
}

// CreateVendor - создание продавца администратором
// @Summary Создать продавца
// @Description Создаёт продавца от имени администратора: source=admin, сразу approved
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.SubmitVendorRequest true "Данные продавца"
// @Success 201 {object} domain.Vendor
// @Failure 400 {object} utils.ErrorResponse
// @Router /admin/vendors [post]
func (h *AdminHandler) CreateVendor(c *fiber.Ctx) error {
	var req dto.SubmitVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	principal := middleware.PrincipalFromCtx(c)

	vendor, err := h.moderationUC.CreateVendor(c.Context(), principal.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"vendor": vendor,
	})
}

// GetAnalytics - агрегированные счётчики
// @Summary Аналитика
// @Description Возвращает суммарные счётчики по продавцам: всего, одобренных, ожидающих, пользовательских, просмотров и кликов
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.VendorAnalytics
// @Router /admin/analytics [get]
func (h *AdminHandler) GetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.moderationUC.GetAnalytics(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(analytics)
}
