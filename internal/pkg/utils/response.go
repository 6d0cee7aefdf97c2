package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nearby-service/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
