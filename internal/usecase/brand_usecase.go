package usecase

import (
	"context"

	"depot/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateBrandInput defines the data required to create a brand.
type CreateBrandInput struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// UpdateBrandInput defines a brand edit. The cached product count is derived
// state and not editable.
type UpdateBrandInput struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// ReconcileOutput reports one reconciliation sweep run.
type ReconcileOutput struct {
	// Checked is the number of brands whose cached count was non-positive.
	Checked int `json:"checked"`
	// Repaired is the number of brands whose cached count was overwritten with
	// the true count.
	Repaired int `json:"repaired"`
	// Deleted is the number of brands removed because no product references them.
	Deleted int `json:"deleted"`
}

// BrandUsecase defines the interface for brand management, including the
// product-count reconciliation sweep and brand image storage.
type BrandUsecase interface {
	// CreateBrand persists a new brand with a unique name and zero products.
	CreateBrand(ctx context.Context, input *CreateBrandInput) (*entity.Brand, error)

	// ListBrands retrieves all brands by display rank.
	ListBrands(ctx context.Context) ([]*entity.Brand, error)

	// UpdateBrand edits a brand's name and display rank.
	UpdateBrand(ctx context.Context, id uuid.UUID, input *UpdateBrandInput) (*entity.Brand, error)

	// DeleteBrand removes a brand. Rejected while products verifiably still
	// reference it; the check counts real products, not the cached count.
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	// ReconcileProductCounts runs the idempotent drift-repair sweep: brands with
	// a non-positive cached count are re-counted from the product set and either
	// repaired or, when truly empty, deleted.
	ReconcileProductCounts(ctx context.Context) (*ReconcileOutput, error)

	// UploadBrandImage stores image bytes for a brand and records the storage key.
	UploadBrandImage(ctx context.Context, id uuid.UUID, contentType string, data []byte) (*entity.Brand, error)

	// GetBrandImage retrieves a brand's stored image bytes and content type.
	GetBrandImage(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}
