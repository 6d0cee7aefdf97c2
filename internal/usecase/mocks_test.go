package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nearby-service/internal/domain"
)

// MockVendorRepository is a mock of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) GetNearby(ctx context.Context, lat, lng float64, radius domain.Radius, status, category string, limit int) ([]*domain.Vendor, error) {
	args := m.Called(ctx, lat, lng, radius, status, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) UpdateModeration(ctx context.Context, id string, patch domain.VendorPatch, status, moderatorID, rejectionReason string) (*domain.Vendor, error) {
	args := m.Called(ctx, id, patch, status, moderatorID, rejectionReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByOwner(ctx context.Context, userID string) ([]*domain.Vendor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByStatus(ctx context.Context, status string) ([]*domain.Vendor, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVendorRepository) FindDuplicate(ctx context.Context, name string, lat, lng, radiusMeters float64) (*domain.Vendor, error) {
	args := m.Called(ctx, name, lat, lng, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) IncrementViewCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) IncrementClickCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) GetAnalytics(ctx context.Context) (*domain.VendorAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorAnalytics), args.Error(1)
}

// MockRateLimitRepository is a mock of RateLimitRepository
type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) Consume(ctx context.Context, principalID string, limit int) (bool, error) {
	args := m.Called(ctx, principalID, limit)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimitRepository) Remaining(ctx context.Context, principalID string, limit int) (int, error) {
	args := m.Called(ctx, principalID, limit)
	return args.Int(0), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheRepository) SetCategories(ctx context.Context, categories []string) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
