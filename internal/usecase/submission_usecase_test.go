package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	apperrors "github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/usecase/dto"
)

func submitRequest(name string, lat, lng float64) dto.SubmitVendorRequest {
	return dto.SubmitVendorRequest{
		Name:     name,
		Category: "food",
		Location: &dto.LocationInput{Lat: lat, Lng: lng},
	}
}

func TestSubmissionUseCase_Submit(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	principal := &domain.Principal{ID: "user-1", Role: domain.RoleUser}

	t.Run("successful submission is created pending with user source", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		mockLimiter.On("Remaining", ctx, "user-1", 5).Return(3, nil)
		mockRepo.On("FindDuplicate", ctx, "Fresh Fruits Corner", 28.6139, 77.2090, 50.0).Return(nil, nil)
		mockLimiter.On("Consume", ctx, "user-1", 5).Return(true, nil)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(v *domain.Vendor) bool {
			return v.Status == domain.StatusPending &&
				v.Source == domain.SourceUser &&
				v.CreatedByUserID != nil && *v.CreatedByUserID == "user-1" &&
				v.Location.Lat == 28.6139 && v.Location.Lng == 77.2090
		})).Return(nil)

		vendor, err := uc.Submit(ctx, principal, submitRequest("Fresh Fruits Corner", 28.6139, 77.2090))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, vendor.Status)
		assert.Equal(t, domain.SourceUser, vendor.Source)
		mockRepo.AssertExpectations(t)
		mockLimiter.AssertExpectations(t)
	})

	t.Run("duplicate nearby refuses insertion and returns the match", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		existing := approvedVendor("existing", "Fresh Fruit Corner", 28.6139, 77.2090)

		mockLimiter.On("Remaining", ctx, "user-1", 5).Return(5, nil)
		mockRepo.On("FindDuplicate", ctx, "Fresh Fruits Corner", 28.6139, 77.2090, 50.0).Return(existing, nil)

		_, err := uc.Submit(ctx, principal, submitRequest("Fresh Fruits Corner", 28.6139, 77.2090))
		require.Error(t, err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, "DUPLICATE_VENDOR", appErr.Code)
		assert.Equal(t, true, appErr.Details["duplicate"])

		existingVendor, ok := appErr.Details["existingVendor"].(dto.VendorPublic)
		require.True(t, ok)
		assert.Equal(t, "existing", existingVendor.ID)

		// Дубликат не тратит квоту и не создаёт запись
		mockLimiter.AssertNotCalled(t, "Consume")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("exhausted daily quota is denied with 429", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		mockLimiter.On("Remaining", ctx, "user-1", 5).Return(0, nil)

		_, err := uc.Submit(ctx, principal, submitRequest("Late Stand", 0, 0))
		assert.Equal(t, apperrors.ErrSubmissionLimit, err)
		mockRepo.AssertNotCalled(t, "FindDuplicate")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("atomic consume is the final gate against concurrent submissions", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		mockLimiter.On("Remaining", ctx, "user-1", 5).Return(1, nil)
		mockRepo.On("FindDuplicate", ctx, "Race Stand", 0.0, 0.0, 50.0).Return(nil, nil)
		mockLimiter.On("Consume", ctx, "user-1", 5).Return(false, nil)

		_, err := uc.Submit(ctx, principal, submitRequest("Race Stand", 0, 0))
		assert.Equal(t, apperrors.ErrSubmissionLimit, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("invalid coordinates rejected before any store access", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		_, err := uc.Submit(ctx, principal, submitRequest("Nowhere", 91, 200))
		assert.Equal(t, apperrors.ErrInvalidCoordinates, err)
		mockLimiter.AssertNotCalled(t, "Remaining")
		mockRepo.AssertNotCalled(t, "FindDuplicate")
	})

	t.Run("missing location rejected", func(t *testing.T) {
		mockRepo := &MockVendorRepository{}
		mockLimiter := &MockRateLimitRepository{}
		uc := usecase.NewSubmissionUseCase(mockRepo, mockLimiter, testLimits(), logger)

		req := dto.SubmitVendorRequest{Name: "No Location", Category: "food"}
		_, err := uc.Submit(ctx, principal, req)
		assert.Equal(t, apperrors.ErrInvalidCoordinates, err)
	})
}
