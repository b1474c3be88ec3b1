package impl

import (
	"context"
	"testing"

	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// brandServiceFixtures holds all test dependencies for brand service tests.
type brandServiceFixtures struct {
	service    usecase.BrandUsecase
	brandRepo  *mockBrandRepository
	prodRepo   *mockProductRepository
	imageStore *mockImageStore
}

func createTestBrandService() brandServiceFixtures {
	brandRepo := &mockBrandRepository{}
	prodRepo := &mockProductRepository{}
	imageStore := &mockImageStore{}
	txManager := &passthroughTxManager{factory: &stubRepositoryFactory{
		productRepo: prodRepo,
		brandRepo:   brandRepo,
	}}

	svc := NewBrandService(BrandServiceParams{
		BrandRepo:   brandRepo,
		ProductRepo: prodRepo,
		ImageStore:  imageStore,
		TxManager:   txManager,
		Logger:      newDiscardLogger(),
	})

	return brandServiceFixtures{
		service:    svc,
		brandRepo:  brandRepo,
		prodRepo:   prodRepo,
		imageStore: imageStore,
	}
}

func TestBrandService_CreateBrand_Success(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()

	fx.brandRepo.On("CreateBrand", ctx, mock.AnythingOfType("*entity.Brand")).Return(nil)

	brand, err := fx.service.CreateBrand(ctx, &usecase.CreateBrandInput{Name: "Acme", Order: 1})

	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
	assert.Equal(t, 0, brand.ProductCount)
}

func TestBrandService_CreateBrand_DuplicateName(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()

	fx.brandRepo.On("CreateBrand", ctx, mock.AnythingOfType("*entity.Brand")).
		Return(repository.ErrDuplicateBrandName)

	brand, err := fx.service.CreateBrand(ctx, &usecase.CreateBrandInput{Name: "Acme"})

	require.Error(t, err)
	assert.Nil(t, brand)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandNameTaken))
}

func TestBrandService_DeleteBrand_RejectedWhileProductsRemain(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	// The cached count has drifted to zero; the real count decides.
	brand := testBrand("Acme", 0)

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.prodRepo.On("CountProductsByBrand", ctx, brand.ID).Return(int64(2), nil)

	err := fx.service.DeleteBrand(ctx, brand.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandHasProducts))
	fx.brandRepo.AssertNotCalled(t, "DeleteBrand", mock.Anything, mock.Anything)
}

func TestBrandService_DeleteBrand_EmptyBrandRemovedWithImage(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 1) // cache drifted the other way
	brand.Image = "brands/" + brand.ID.String()

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.prodRepo.On("CountProductsByBrand", ctx, brand.ID).Return(int64(0), nil)
	fx.brandRepo.On("DeleteBrand", ctx, brand.ID).Return(nil)
	fx.imageStore.On("Delete", ctx, brand.Image).Return(nil)

	err := fx.service.DeleteBrand(ctx, brand.ID)

	require.NoError(t, err)
	fx.brandRepo.AssertCalled(t, "DeleteBrand", ctx, brand.ID)
	fx.imageStore.AssertCalled(t, "Delete", ctx, brand.Image)
}

func TestBrandService_DeleteBrand_NotFound(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	missingID := uuid.New()

	fx.brandRepo.On("FindBrandByID", ctx, missingID).Return(nil, repository.ErrBrandNotFound)

	err := fx.service.DeleteBrand(ctx, missingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandNotFound))
}

func TestBrandService_ReconcileProductCounts_RepairsDrift(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	drifted := testBrand("Acme", -1)

	fx.brandRepo.On("FindBrandsWithNonPositiveCount", ctx).Return([]*entity.Brand{drifted}, nil)
	fx.prodRepo.On("CountProductsGroupedByBrand", ctx).Return([]*repository.BrandProductCount{
		{BrandID: drifted.ID, Count: 2},
	}, nil)
	fx.brandRepo.On("SetProductCount", ctx, drifted.ID, int64(2)).Return(nil)

	out, err := fx.service.ReconcileProductCounts(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Checked)
	assert.Equal(t, 1, out.Repaired)
	assert.Equal(t, 0, out.Deleted)
	fx.brandRepo.AssertNotCalled(t, "DeleteBrand", mock.Anything, mock.Anything)
}

func TestBrandService_ReconcileProductCounts_DeletesOrphans(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	orphan := testBrand("Ghostco", 0)
	orphan.Image = "brands/" + orphan.ID.String()

	fx.brandRepo.On("FindBrandsWithNonPositiveCount", ctx).Return([]*entity.Brand{orphan}, nil)
	fx.prodRepo.On("CountProductsGroupedByBrand", ctx).Return([]*repository.BrandProductCount{}, nil)
	fx.brandRepo.On("DeleteBrand", ctx, orphan.ID).Return(nil)
	fx.imageStore.On("Delete", ctx, orphan.Image).Return(nil)

	out, err := fx.service.ReconcileProductCounts(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Checked)
	assert.Equal(t, 0, out.Repaired)
	assert.Equal(t, 1, out.Deleted)
	fx.imageStore.AssertCalled(t, "Delete", ctx, orphan.Image)
}

func TestBrandService_ReconcileProductCounts_NoCandidates(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()

	fx.brandRepo.On("FindBrandsWithNonPositiveCount", ctx).Return([]*entity.Brand{}, nil)

	out, err := fx.service.ReconcileProductCounts(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Checked)
	fx.prodRepo.AssertNotCalled(t, "CountProductsGroupedByBrand", mock.Anything)
}

func TestBrandService_ReconcileProductCounts_IsIdempotent(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	drifted := testBrand("Acme", 0)

	fx.brandRepo.On("FindBrandsWithNonPositiveCount", ctx).Return([]*entity.Brand{drifted}, nil).Once()
	fx.prodRepo.On("CountProductsGroupedByBrand", ctx).Return([]*repository.BrandProductCount{
		{BrandID: drifted.ID, Count: 3},
	}, nil).Once()
	fx.brandRepo.On("SetProductCount", ctx, drifted.ID, int64(3)).Return(nil).Once()

	first, err := fx.service.ReconcileProductCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repaired)

	// After the repair the brand no longer qualifies as a candidate.
	fx.brandRepo.On("FindBrandsWithNonPositiveCount", ctx).Return([]*entity.Brand{}, nil).Once()

	second, err := fx.service.ReconcileProductCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Checked)
	assert.Equal(t, 0, second.Repaired)
}

func TestBrandService_UpdateBrand_DuplicateName(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 2)

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.brandRepo.On("UpdateBrand", ctx, mock.AnythingOfType("*entity.Brand")).
		Return(repository.ErrDuplicateBrandName)

	updated, err := fx.service.UpdateBrand(ctx, brand.ID, &usecase.UpdateBrandInput{Name: "Widget"})

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandNameTaken))
}

func TestBrandService_UploadBrandImage_RecordsKey(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 2)
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	wantKey := "brands/" + brand.ID.String()

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.imageStore.On("Save", ctx, wantKey, "image/png", data).Return(nil)
	fx.brandRepo.On("UpdateBrandImage", ctx, brand.ID, wantKey).Return(nil)

	updated, err := fx.service.UploadBrandImage(ctx, brand.ID, "image/png", data)

	require.NoError(t, err)
	assert.Equal(t, wantKey, updated.Image)
}

func TestBrandService_GetBrandImage_Success(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 2)
	brand.Image = "brands/" + brand.ID.String()
	data := []byte{0x89, 0x50, 0x4e, 0x47}

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.imageStore.On("Load", ctx, brand.Image).Return(data, "image/png", nil)

	got, contentType, err := fx.service.GetBrandImage(ctx, brand.ID)

	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", contentType)
}

func TestBrandService_GetBrandImage_NoImageStored(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 2)

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)

	got, contentType, err := fx.service.GetBrandImage(ctx, brand.ID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Empty(t, contentType)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandImageNotFound))
	fx.imageStore.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestBrandService_GetBrandImage_BlobMissing(t *testing.T) {
	fx := createTestBrandService()

	ctx := context.Background()
	brand := testBrand("Acme", 2)
	brand.Image = "brands/" + brand.ID.String()

	fx.brandRepo.On("FindBrandByID", ctx, brand.ID).Return(brand, nil)
	fx.imageStore.On("Load", ctx, brand.Image).Return(nil, "", service.ErrImageNotFound)

	_, _, err := fx.service.GetBrandImage(ctx, brand.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBrandImageNotFound))
}
