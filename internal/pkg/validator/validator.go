package validator

import (
	"github.com/go-playground/validator/v10"
	apperrors "github.com/nearby-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate - валидация структуры. Ошибки валидатора приводятся к
// AppError с кодом VALIDATION_ERROR и списком невалидных полей.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.ErrValidation
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field())
	}

	return apperrors.ErrValidation.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
