package impl

import (
	"context"
	"log/slog"

	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type brandService struct {
	brandRepo  repository.BrandRepository
	imageStore service.ImageStore
	txManager  repository.TransactionManager
	counts     *brandCountMaintainer
	logger     *slog.Logger
}

// BrandServiceParams holds dependencies for BrandService, injected by Fx.
type BrandServiceParams struct {
	fx.In

	BrandRepo   repository.BrandRepository
	ProductRepo repository.ProductRepository
	ImageStore  service.ImageStore
	TxManager   repository.TransactionManager
	Logger      *slog.Logger
}

// NewBrandService creates a new brand service instance
func NewBrandService(params BrandServiceParams) usecase.BrandUsecase {
	return &brandService{
		brandRepo:  params.BrandRepo,
		imageStore: params.ImageStore,
		txManager:  params.TxManager,
		counts:     newBrandCountMaintainer(params.BrandRepo, params.ProductRepo, params.ImageStore, params.Logger),
		logger:     params.Logger,
	}
}

// CreateBrand persists a new brand with a unique name and an empty product set.
func (s *brandService) CreateBrand(ctx context.Context, input *usecase.CreateBrandInput) (*entity.Brand, error) {
	brand := &entity.Brand{
		ID:           uuid.New(),
		Name:         input.Name,
		ProductCount: 0,
		Order:        input.Order,
	}

	if err := s.brandRepo.CreateBrand(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicateBrandName) {
			return nil, domainerrors.ErrBrandNameTaken
		}

		return nil, errors.Wrap(err, "failed to create brand")
	}

	return brand, nil
}

// ListBrands retrieves all brands by display rank.
func (s *brandService) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	brands, err := s.brandRepo.ListBrands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	return brands, nil
}

// UpdateBrand edits a brand's name and display rank. The cached product count
// is derived state and stays untouched.
func (s *brandService) UpdateBrand(ctx context.Context, id uuid.UUID, input *usecase.UpdateBrandInput) (*entity.Brand, error) {
	brand, err := s.brandRepo.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to find brand")
	}

	brand.Name = input.Name
	brand.Order = input.Order

	if err := s.brandRepo.UpdateBrand(ctx, brand); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBrandName):
			return nil, domainerrors.ErrBrandNameTaken
		case errors.Is(err, repository.ErrBrandNotFound):
			return nil, domainerrors.ErrBrandNotFound
		default:
			return nil, errors.Wrap(err, "failed to update brand")
		}
	}

	return brand, nil
}

// DeleteBrand removes a brand. The guard counts real products rather than
// trusting the cached count, so a drifted cache can neither block the delete
// of an empty brand nor allow deleting one that still has products. Guard and
// delete share one transaction so a product created in between cannot be
// orphaned.
func (s *brandService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	brand, err := s.brandRepo.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return domainerrors.ErrBrandNotFound
		}

		return errors.Wrap(err, "failed to find brand")
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		count, err := repos.NewProductRepository().CountProductsByBrand(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count brand products")
		}
		if count > 0 {
			return domainerrors.ErrBrandHasProducts
		}

		return repos.NewBrandRepository().DeleteBrand(ctx, id)
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrBrandHasProducts):
			return domainerrors.ErrBrandHasProducts
		case errors.Is(err, repository.ErrBrandNotFound):
			return domainerrors.ErrBrandNotFound
		default:
			return errors.Wrap(err, "failed to delete brand")
		}
	}

	s.counts.releaseImage(ctx, brand)

	return nil
}

// ReconcileProductCounts runs the drift-repair sweep over brands whose cached
// count is non-positive.
func (s *brandService) ReconcileProductCounts(ctx context.Context) (*usecase.ReconcileOutput, error) {
	return s.counts.reconcile(ctx)
}

// UploadBrandImage stores image bytes for a brand under a deterministic key
// and records the key on the brand. Re-uploading overwrites the previous image.
func (s *brandService) UploadBrandImage(ctx context.Context, id uuid.UUID, contentType string, data []byte) (*entity.Brand, error) {
	brand, err := s.brandRepo.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to find brand")
	}

	key := brandImageKey(id)
	if err := s.imageStore.Save(ctx, key, contentType, data); err != nil {
		return nil, errors.Wrap(err, "failed to store brand image")
	}

	if err := s.brandRepo.UpdateBrandImage(ctx, id, key); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to record brand image key")
	}

	brand.Image = key

	return brand, nil
}

// GetBrandImage retrieves a brand's stored image bytes and content type.
func (s *brandService) GetBrandImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	brand, err := s.brandRepo.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, "", domainerrors.ErrBrandNotFound
		}

		return nil, "", errors.Wrap(err, "failed to find brand")
	}

	if brand.Image == "" {
		return nil, "", domainerrors.ErrBrandImageNotFound
	}

	data, contentType, err := s.imageStore.Load(ctx, brand.Image)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			return nil, "", domainerrors.ErrBrandImageNotFound
		}

		return nil, "", errors.Wrap(err, "failed to load brand image")
	}

	return data, contentType, nil
}

// brandImageKey is the storage key for a brand's image, one image per brand.
func brandImageKey(id uuid.UUID) string {
	return "brands/" + id.String()
}
