package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	apperrors "github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/usecase/dto"
)

func TestModerationUseCase_Approve(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("approve stamps moderator and clears rejection reason", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		moderatedAt := time.Now()
		moderator := "admin-1"
		approved := &domain.Vendor{
			ID:              "v1",
			Status:          domain.StatusApproved,
			ModeratedBy:     &moderator,
			ModeratedAt:     &moderatedAt,
			RejectionReason: "",
		}

		mockRepo.On("UpdateModeration", ctx, "v1", domain.VendorPatch{},
			domain.StatusApproved, "admin-1", "",
		).Return(approved, nil)
		mockCache.On("InvalidateCategories", ctx).Return(nil)

		vendor, err := uc.Approve(ctx, "v1", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, vendor.Status)
		assert.Equal(t, "admin-1", *vendor.ModeratedBy)
		assert.Empty(t, vendor.RejectionReason)
		mockRepo.AssertExpectations(t)
	})

	t.Run("approve of missing vendor is not found", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		mockRepo.On("UpdateModeration", ctx, "missing", domain.VendorPatch{},
			domain.StatusApproved, "admin-1", "",
		).Return(nil, apperrors.ErrVendorNotFound)

		_, err := uc.Approve(ctx, "missing", "admin-1")
		assert.Equal(t, apperrors.ErrVendorNotFound, err)
	})

	t.Run("re-approving an approved vendor is permissive", func(t *testing.T) {
		// Зафиксированное поведение: повторное одобрение не отклоняется,
		// а просто перештамповывает модератора и время. Вопрос о более
		// строгом InvalidTransition оставлен открытым сознательно.
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		second := "admin-2"
		restamped := &domain.Vendor{ID: "v1", Status: domain.StatusApproved, ModeratedBy: &second}

		mockRepo.On("UpdateModeration", ctx, "v1", domain.VendorPatch{},
			domain.StatusApproved, "admin-2", "",
		).Return(restamped, nil)
		mockCache.On("InvalidateCategories", ctx).Return(nil)

		vendor, err := uc.Approve(ctx, "v1", "admin-2")
		require.NoError(t, err)
		assert.Equal(t, "admin-2", *vendor.ModeratedBy)
	})
}

func TestModerationUseCase_Reject(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockVendorRepository{}
	mockCache := &MockCacheRepository{}
	uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

	rejected := &domain.Vendor{ID: "v1", Status: domain.StatusRejected, RejectionReason: "duplicate listing"}

	mockRepo.On("UpdateModeration", ctx, "v1", domain.VendorPatch{},
		domain.StatusRejected, "admin-1", "duplicate listing",
	).Return(rejected, nil)
	mockCache.On("InvalidateCategories", ctx).Return(nil)

	vendor, err := uc.Reject(ctx, "v1", "admin-1", "duplicate listing")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, vendor.Status)
	assert.Equal(t, "duplicate listing", vendor.RejectionReason)
}

func TestModerationUseCase_EditAndApprove(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("provided fields are applied together with the approval", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		name := "Corrected Name"
		emptyDescription := ""
		req := dto.VendorPatchRequest{
			Name:        &name,
			Description: &emptyDescription, // явно переданная пустая строка применяется
		}

		mockRepo.On("UpdateModeration", ctx, "v1", mock.MatchedBy(func(p domain.VendorPatch) bool {
			return p.Name != nil && *p.Name == "Corrected Name" &&
				p.Description != nil && *p.Description == "" &&
				p.Category == nil // не переданное поле не трогается
		}), domain.StatusApproved, "admin-1", "").Return(&domain.Vendor{
			ID:     "v1",
			Name:   "Corrected Name",
			Status: domain.StatusApproved,
		}, nil)
		mockCache.On("InvalidateCategories", ctx).Return(nil)

		vendor, err := uc.EditAndApprove(ctx, "v1", "admin-1", req)
		require.NoError(t, err)
		assert.Equal(t, "Corrected Name", vendor.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestModerationUseCase_ListSubmissions(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("default status is pending", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		mockRepo.On("GetByStatus", ctx, domain.StatusPending).Return([]*domain.Vendor{}, nil)

		_, err := uc.ListSubmissions(ctx, "")
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		_, err := uc.ListSubmissions(ctx, "archived")
		assert.Equal(t, apperrors.ErrValidation, err)
		mockRepo.AssertNotCalled(t, "GetByStatus")
	})

	t.Run("all statuses", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

		mockRepo.On("GetByStatus", ctx, "all").Return([]*domain.Vendor{}, nil)

		_, err := uc.ListSubmissions(ctx, "all")
		require.NoError(t, err)
	})
}

func TestModerationUseCase_CreateVendor(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockVendorRepository{}
	mockCache := &MockCacheRepository{}
	uc := usecase.NewModerationUseCase(mockRepo, mockCache, logger)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(v *domain.Vendor) bool {
		return v.Source == domain.SourceAdmin &&
			v.Status == domain.StatusApproved &&
			v.CreatedByUserID != nil && *v.CreatedByUserID == "admin-1"
	})).Return(nil)
	mockCache.On("InvalidateCategories", ctx).Return(nil)

	vendor, err := uc.CreateVendor(ctx, "admin-1", submitRequest("Official Stand", 28.6139, 77.2090))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, vendor.Status)
	assert.Equal(t, domain.SourceAdmin, vendor.Source)
	mockRepo.AssertExpectations(t)
}
