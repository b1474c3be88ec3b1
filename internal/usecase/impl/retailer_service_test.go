package impl

import (
	"context"
	"testing"

	"depot/config"
	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// retailerServiceFixtures holds all test dependencies for retailer service tests.
type retailerServiceFixtures struct {
	service      usecase.RetailerUsecase
	retailerRepo *mockRetailerRepository
}

func createTestRetailerService() retailerServiceFixtures {
	retailerRepo := &mockRetailerRepository{}

	svc := NewRetailerService(RetailerServiceParams{
		RetailerRepo: retailerRepo,
		Config: &config.Config{
			Ordering: &config.OrderingConfig{Bits: []string{"A-1", "B-2"}},
		},
		Logger: newDiscardLogger(),
	})

	return retailerServiceFixtures{
		service:      svc,
		retailerRepo: retailerRepo,
	}
}

func TestRetailerService_CreateRetailer_Success(t *testing.T) {
	fx := createTestRetailerService()

	ctx := context.Background()

	fx.retailerRepo.On("CreateRetailer", ctx, mock.AnythingOfType("*entity.Retailer")).Return(nil)

	retailer, err := fx.service.CreateRetailer(ctx, &usecase.CreateRetailerInput{
		Name:  "Corner Shop",
		Phone: "+15551234567",
		Bit:   "A-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", retailer.Name)
	assert.Equal(t, "A-1", retailer.Bit)
}

func TestRetailerService_CreateRetailer_DuplicatePhone(t *testing.T) {
	fx := createTestRetailerService()

	ctx := context.Background()

	fx.retailerRepo.On("CreateRetailer", ctx, mock.AnythingOfType("*entity.Retailer")).
		Return(repository.ErrDuplicateRetailerPhone)

	retailer, err := fx.service.CreateRetailer(ctx, &usecase.CreateRetailerInput{
		Name:  "Corner Shop",
		Phone: "+15551234567",
		Bit:   "A-1",
	})

	require.Error(t, err)
	assert.Nil(t, retailer)
	assert.True(t, errors.Is(err, domainerrors.ErrRetailerPhoneTaken))
}

func TestRetailerService_CreateRetailer_InvalidBit(t *testing.T) {
	fx := createTestRetailerService()

	ctx := context.Background()

	retailer, err := fx.service.CreateRetailer(ctx, &usecase.CreateRetailerInput{
		Name:  "Corner Shop",
		Phone: "+15551234567",
		Bit:   "Z-9",
	})

	require.Error(t, err)
	assert.Nil(t, retailer)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidBit))
	fx.retailerRepo.AssertNotCalled(t, "CreateRetailer", mock.Anything, mock.Anything)
}

func TestRetailerService_UpdateRetailer_DuplicatePhone(t *testing.T) {
	fx := createTestRetailerService()

	ctx := context.Background()
	existing := &entity.Retailer{
		ID:    uuid.New(),
		Name:  "Corner Shop",
		Phone: "+15551234567",
		Bit:   "A-1",
	}

	fx.retailerRepo.On("FindRetailerByID", ctx, existing.ID).Return(existing, nil)
	fx.retailerRepo.On("UpdateRetailer", ctx, mock.AnythingOfType("*entity.Retailer")).
		Return(repository.ErrDuplicateRetailerPhone)

	retailer, err := fx.service.UpdateRetailer(ctx, existing.ID, &usecase.UpdateRetailerInput{
		Name:  "Corner Shop",
		Phone: "+15559876543",
		Bit:   "B-2",
	})

	require.Error(t, err)
	assert.Nil(t, retailer)
	assert.True(t, errors.Is(err, domainerrors.ErrRetailerPhoneTaken))
}

func TestRetailerService_ListActiveBits(t *testing.T) {
	fx := createTestRetailerService()

	ctx := context.Background()

	fx.retailerRepo.On("ListDistinctBits", ctx).Return([]string{"A-1", "B-2"}, nil)

	bits, err := fx.service.ListActiveBits(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "B-2"}, bits)
}
