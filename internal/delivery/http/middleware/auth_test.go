package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-service/internal/delivery/http/middleware"
	"github.com/nearby-service/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthApp(handler fiber.Handler, middlewares ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, m := range middlewares {
		app.Use(m)
	}
	app.Get("/protected", handler)
	return app
}

func echoPrincipal(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)
	if principal == nil {
		return c.JSON(fiber.Map{"anonymous": true})
	}
	return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token passes principal to handler", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "role": domain.RoleUser})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("header without bearer scheme is unauthorized", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token without subject is unauthorized", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.Authenticate(testSecret))

		token := signToken(t, testSecret, jwt.MapClaims{"role": domain.RoleAdmin})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous request passes through", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.OptionalAuth(testSecret))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid token is treated as anonymous", func(t *testing.T) {
		app := newAuthApp(echoPrincipal, middleware.OptionalAuth(testSecret))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin role passes", func(t *testing.T) {
		app := newAuthApp(echoPrincipal,
			middleware.Authenticate(testSecret),
			middleware.RequireAdmin(),
		)

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "admin-1", "role": domain.RoleAdmin})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		app := newAuthApp(echoPrincipal,
			middleware.Authenticate(testSecret),
			middleware.RequireAdmin(),
		)

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "role": domain.RoleUser})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing role claim defaults to user and is forbidden", func(t *testing.T) {
		app := newAuthApp(echoPrincipal,
			middleware.Authenticate(testSecret),
			middleware.RequireAdmin(),
		)

		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
