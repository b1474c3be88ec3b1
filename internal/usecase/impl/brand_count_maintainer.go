package impl

import (
	"context"
	"log/slog"

	deliverycontext "depot/internal/delivery/context"
	"depot/internal/domain/entity"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// brandCountMaintainer keeps each brand's cached product count in step with
// product writes and repairs drift through the reconciliation sweep. Count
// adjustments after a committed product write are best-effort: a failure is
// logged, the product write stands, and the sweep converges the cache later.
type brandCountMaintainer struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

func newBrandCountMaintainer(
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	imageStore service.ImageStore,
	logger *slog.Logger,
) *brandCountMaintainer {
	return &brandCountMaintainer{
		brandRepo:   brandRepo,
		productRepo: productRepo,
		imageStore:  imageStore,
		logger:      logger,
	}
}

// requireBrand loads the brand a product wants to reference. A missing brand
// is a hard gate: the caller must reject the product write.
func (m *brandCountMaintainer) requireBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := m.brandRepo.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find brand")
	}

	return brand, nil
}

// productAdded bumps the brand's cached count after a product started
// referencing it.
func (m *brandCountMaintainer) productAdded(ctx context.Context, brandID uuid.UUID) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

	if _, err := m.brandRepo.AdjustProductCount(ctx, brandID, 1); err != nil {
		logger.Warn("Failed to increment brand product count, sweep will repair",
			slog.String("brand_id", brandID.String()),
			slog.Any("error", err),
		)
	}
}

// productRemoved drops the brand's cached count after a product stopped
// referencing it, cascade-deleting the brand when the count reaches zero.
func (m *brandCountMaintainer) productRemoved(ctx context.Context, brandID uuid.UUID) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

	count, err := m.brandRepo.AdjustProductCount(ctx, brandID, -1)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return
		}

		logger.Warn("Failed to decrement brand product count, sweep will repair",
			slog.String("brand_id", brandID.String()),
			slog.Any("error", err),
		)

		return
	}
	if count > 0 {
		return
	}

	brand, err := m.brandRepo.FindBrandByID(ctx, brandID)
	if err != nil {
		if !errors.Is(err, repository.ErrBrandNotFound) {
			logger.Warn("Failed to load empty brand for cascade delete, sweep will repair",
				slog.String("brand_id", brandID.String()),
				slog.Any("error", err),
			)
		}

		return
	}

	if err := m.removeBrand(ctx, brand); err != nil && !errors.Is(err, repository.ErrBrandNotFound) {
		logger.Warn("Failed to cascade-delete empty brand, sweep will repair",
			slog.String("brand_id", brandID.String()),
			slog.Any("error", err),
		)

		return
	}

	logger.Info("Cascade-deleted brand after last product removal",
		slog.String("brand_id", brandID.String()),
		slog.String("brand_name", brand.Name),
	)
}

// removeBrand deletes the brand row and its stored image, if any.
func (m *brandCountMaintainer) removeBrand(ctx context.Context, brand *entity.Brand) error {
	if err := m.brandRepo.DeleteBrand(ctx, brand.ID); err != nil {
		return err
	}

	m.releaseImage(ctx, brand)

	return nil
}

// releaseImage drops the brand's stored image blob. The delete is best-effort;
// a leftover blob is overwritten if the key is ever reused.
func (m *brandCountMaintainer) releaseImage(ctx context.Context, brand *entity.Brand) {
	if brand.Image == "" {
		return
	}

	if err := m.imageStore.Delete(ctx, brand.Image); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Failed to delete brand image",
			slog.String("brand_id", brand.ID.String()),
			slog.String("image_key", brand.Image),
			slog.Any("error", err),
		)
	}
}

// reconcile is the idempotent drift-repair sweep. Brands whose cached count is
// non-positive are re-counted from the product table; a brand nothing
// references is deleted, any other candidate has its cache overwritten with
// the true count. Per-brand failures are logged and skipped so one bad row
// never stalls the sweep.
func (m *brandCountMaintainer) reconcile(ctx context.Context) (*usecase.ReconcileOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

	candidates, err := m.brandRepo.FindBrandsWithNonPositiveCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reconcile candidates")
	}

	out := &usecase.ReconcileOutput{}
	if len(candidates) == 0 {
		return out, nil
	}

	counts, err := m.productRepo.CountProductsGroupedByBrand(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products per brand")
	}

	trueCounts := make(map[uuid.UUID]int64, len(counts))
	for _, row := range counts {
		trueCounts[row.BrandID] = row.Count
	}

	for _, brand := range candidates {
		out.Checked++

		trueCount := trueCounts[brand.ID]
		if trueCount == 0 {
			err := m.removeBrand(ctx, brand)
			if err != nil && !errors.Is(err, repository.ErrBrandNotFound) {
				logger.Warn("Failed to delete orphaned brand",
					slog.String("brand_id", brand.ID.String()),
					slog.Any("error", err),
				)

				continue
			}

			out.Deleted++

			continue
		}

		if err := m.brandRepo.SetProductCount(ctx, brand.ID, trueCount); err != nil {
			logger.Warn("Failed to repair brand product count",
				slog.String("brand_id", brand.ID.String()),
				slog.Int64("true_count", trueCount),
				slog.Any("error", err),
			)

			continue
		}

		out.Repaired++
	}

	if out.Repaired > 0 || out.Deleted > 0 {
		logger.Info("Reconciled brand product counts",
			slog.Int("checked", out.Checked),
			slog.Int("repaired", out.Repaired),
			slog.Int("deleted", out.Deleted),
		)
	}

	return out, nil
}
