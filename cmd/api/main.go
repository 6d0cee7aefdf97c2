package main

// @title nearBy Vendor Service API
// @version 1.0.0
// @description Бэкенд приложения nearBy: поиск локальных продавцов по геопозиции,
// @description пользовательские заявки и модерация.
// @description
// @description Основные возможности:
// @description - Поиск одобренных продавцов в радиусе от точки с фильтрами по категории и тексту
// @description - Пользовательские заявки с дневным лимитом и детектором дубликатов
// @description - Модерация заявок: одобрение, отклонение, правка с одобрением
// @description - Аналитика просмотров и кликов

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nearby-service/internal/config"
	httpDelivery "github.com/nearby-service/internal/delivery/http"
	"github.com/nearby-service/internal/delivery/http/handler"
	"github.com/nearby-service/internal/pkg/logger"
	"github.com/nearby-service/internal/repository/cache"
	"github.com/nearby-service/internal/repository/postgres"
	"github.com/nearby-service/internal/usecase"
	"go.uber.org/zap"

	_ "github.com/nearby-service/docs/swagger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting nearBy Vendor Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	vendorRepo := postgres.NewVendorRepository(db)
	rateLimitRepo := cache.NewRateLimitRepository(redisClient)
	cacheRepo := cache.NewCacheRepository(redisClient, cfg.Cache.CategoriesCacheTTL)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	nearbyUC := usecase.NewNearbyUseCase(vendorRepo, cfg.Limits, log)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, cacheRepo, log)
	submissionUC := usecase.NewSubmissionUseCase(vendorRepo, rateLimitRepo, cfg.Limits, log)
	moderationUC := usecase.NewModerationUseCase(vendorRepo, cacheRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	vendorHandler := handler.NewVendorHandler(nearbyUC, vendorUC, submissionUC, log)
	adminHandler := handler.NewAdminHandler(moderationUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, vendorHandler, adminHandler, db, redisClient)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
