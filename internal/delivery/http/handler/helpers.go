package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseFloatQuery читает обязательный числовой query-параметр.
// Отсутствие параметра - ошибка, в отличие от c.QueryFloat,
// который молча подставляет значение по умолчанию.
func parseFloatQuery(c *fiber.Ctx, key string) (float64, error) {
	return strconv.ParseFloat(c.Query(key), 64)
}
