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

type productService struct {
	productRepo repository.ProductRepository
	counts      *brandCountMaintainer
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	BrandRepo   repository.BrandRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		counts:      newBrandCountMaintainer(params.BrandRepo, params.ProductRepo, params.ImageStore, params.Logger),
		logger:      params.Logger,
	}
}

// CreateProduct persists a product under an existing brand. The brand check is
// a hard gate; the count bump afterwards is best-effort.
func (s *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	brand, err := s.counts.requireBrand(ctx, input.BrandID)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, domainerrors.ErrBrandNotFound
		}

		return nil, err
	}

	product := &entity.Product{
		ID:        uuid.New(),
		Name:      input.Name,
		BrandID:   brand.ID,
		BrandName: brand.Name,
		Order:     input.Order,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	s.counts.productAdded(ctx, brand.ID)

	return product, nil
}

// ListProducts retrieves products by display rank, optionally for one brand.
func (s *productService) ListProducts(ctx context.Context, brandID *uuid.UUID) ([]*entity.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, brandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// UpdateProduct edits a product. Moving it to another brand refreshes the
// brand-name snapshot and shifts both cached counts, cascade-deleting the old
// brand once nothing references it. A same-brand edit leaves the snapshot
// untouched.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	previousBrandID := product.BrandID
	rebranded := input.BrandID != previousBrandID

	if rebranded {
		brand, err := s.counts.requireBrand(ctx, input.BrandID)
		if err != nil {
			if errors.Is(err, repository.ErrBrandNotFound) {
				return nil, domainerrors.ErrBrandNotFound
			}

			return nil, err
		}

		product.BrandID = brand.ID
		product.BrandName = brand.Name
	}

	product.Name = input.Name
	product.Order = input.Order

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	if rebranded {
		s.counts.productAdded(ctx, product.BrandID)
		s.counts.productRemoved(ctx, previousBrandID)
	}

	return product, nil
}

// ReorderProducts applies a batch of independent display-rank updates.
func (s *productService) ReorderProducts(ctx context.Context, ranks []usecase.ProductRankInput) error {
	for _, rank := range ranks {
		if err := s.productRepo.UpdateProductRank(ctx, rank.ID, rank.Order); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to update product rank")
		}
	}

	return nil
}

// DeleteProduct removes a product and decrements the owning brand's count,
// cascade-deleting the brand if this was its last product.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to find product")
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	s.counts.productRemoved(ctx, product.BrandID)

	return nil
}
