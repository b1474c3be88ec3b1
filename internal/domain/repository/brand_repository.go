package repository

import (
	"context"

	"depot/internal/domain/entity"
	"depot/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for brand persistence.
var (
	// ErrBrandNotFound is returned when a brand is not found.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrDuplicateBrandName is returned when creating or renaming a brand to a name already in use.
	ErrDuplicateBrandName = errors.New("brand name already exists")
)

// BrandRepository defines the interface for brand-related database operations.
type BrandRepository interface {
	// CreateBrand persists a new brand.
	// Returns ErrDuplicateBrandName when the name is already taken.
	CreateBrand(ctx context.Context, brand *entity.Brand) error

	// FindBrandByID retrieves a brand by its unique ID.
	FindBrandByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)

	// ListBrands retrieves all brands ordered by display rank.
	ListBrands(ctx context.Context) ([]*entity.Brand, error)

	// UpdateBrand replaces a brand's mutable fields.
	// Returns ErrDuplicateBrandName when renaming to a name already taken.
	UpdateBrand(ctx context.Context, brand *entity.Brand) error

	// UpdateBrandImage records the storage key of a brand's image.
	UpdateBrandImage(ctx context.Context, id uuid.UUID, imageKey string) error

	// DeleteBrand removes a brand by its ID.
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	// AdjustProductCount atomically adds delta to a brand's cached product count
	// and returns the resulting value. The add happens in a single statement so
	// concurrent adjustments never lose updates, though the cache can still drift
	// when a process dies between a product write and its adjustment.
	AdjustProductCount(ctx context.Context, id uuid.UUID, delta int) (int64, error)

	// SetProductCount overwrites a brand's cached product count with the given value.
	SetProductCount(ctx context.Context, id uuid.UUID, count int64) error

	// FindBrandsWithNonPositiveCount retrieves all brands whose cached product
	// count is zero or negative. These are the reconciliation sweep's candidates.
	FindBrandsWithNonPositiveCount(ctx context.Context) ([]*entity.Brand, error)
}
