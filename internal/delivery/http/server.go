package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/delivery/http/handler"
	"github.com/nearby-service/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, умеющая отвечать на ping
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	vendorHandler *handler.VendorHandler
	adminHandler  *handler.AdminHandler

	// Health-зависимости
	db    HealthChecker
	cache HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	vendorHandler *handler.VendorHandler,
	adminHandler *handler.AdminHandler,
	db HealthChecker,
	cache HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "nearBy Vendor Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		vendorHandler: vendorHandler,
		adminHandler:  adminHandler,
		db:            db,
		cache:         cache,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Health check
	s.app.Get("/health", s.healthHandler)

	secret := s.config.Auth.JWTSecret

	// Публичные и пользовательские маршруты.
	// Литеральные пути регистрируются раньше /:id - fiber матчит
	// маршруты в порядке регистрации.
	vendors := s.app.Group("/vendors")
	vendors.Get("/nearby", middleware.OptionalAuth(secret), s.vendorHandler.GetNearby)
	vendors.Get("/my-submissions", middleware.Authenticate(secret), s.vendorHandler.GetMySubmissions)
	vendors.Get("/categories/list", s.vendorHandler.GetCategories)
	vendors.Post("/user-submissions", middleware.Authenticate(secret), s.vendorHandler.Submit)
	vendors.Get("/:id", middleware.OptionalAuth(secret), s.vendorHandler.GetByID)
	vendors.Post("/:id/click", middleware.OptionalAuth(secret), s.vendorHandler.RegisterClick)

	// Административные маршруты
	admin := s.app.Group("/admin", middleware.Authenticate(secret), middleware.RequireAdmin())
	admin.Get("/submissions", s.adminHandler.ListSubmissions)
	admin.Post("/submissions/:id/approve", s.adminHandler.Approve)
	admin.Post("/submissions/:id/reject", s.adminHandler.Reject)
	admin.Put("/submissions/:id", s.adminHandler.EditAndApprove)
	admin.Post("/vendors", s.adminHandler.CreateVendor)
	admin.Get("/analytics", s.adminHandler.GetAnalytics)
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{
		"database": "ok",
		"cache":    "ok",
	}

	if err := s.db.Health(ctx); err != nil {
		checks["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if err := s.cache.Health(ctx); err != nil {
		checks["cache"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	overall := "healthy"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App возвращает fiber-приложение (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
