package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest оборачивает тестовое подключение в postgres.DB
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewVendorRepositoryForTest создаёт репозиторий продавцов поверх тестовой базы
func NewVendorRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VendorRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewVendorRepository(pgDB)
}
