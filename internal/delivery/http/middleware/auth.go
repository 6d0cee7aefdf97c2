package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
)

const principalKey = "principal"

// Authenticate - middleware, требующий валидный Bearer-токен.
// Субъект кладётся в контекст запроса под ключом principal.
func Authenticate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromRequest(c, secret)
		if err != nil {
			return utils.SendError(c, err)
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// OptionalAuth - как Authenticate, но отсутствующий или невалидный токен
// не блокирует запрос: субъект просто остаётся пустым
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if principal, err := principalFromRequest(c, secret); err == nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	}
}

// RequireAdmin пропускает только административную роль.
// Используется после Authenticate.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := PrincipalFromCtx(c)
		if !principal.IsAdmin() {
			return utils.SendError(c, errors.ErrForbidden)
		}
		return c.Next()
	}
}

// PrincipalFromCtx возвращает субъекта запроса или nil для анонима
func PrincipalFromCtx(c *fiber.Ctx) *domain.Principal {
	if principal, ok := c.Locals(principalKey).(*domain.Principal); ok {
		return principal
	}
	return nil
}

func principalFromRequest(c *fiber.Ctx, secret string) (*domain.Principal, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, errors.ErrUnauthorized
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, errors.ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleUser
	}

	return &domain.Principal{ID: userID, Role: role}, nil
}
