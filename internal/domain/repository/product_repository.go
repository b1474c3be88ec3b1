package repository

import (
	"context"

	"depot/internal/domain/entity"
	"depot/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// BrandProductCount is one row of the true product count per brand.
type BrandProductCount struct {
	BrandID uuid.UUID
	Count   int64
}

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its unique ID.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts retrieves all products ordered by display rank, optionally
	// restricted to one brand.
	ListProducts(ctx context.Context, brandID *uuid.UUID) ([]*entity.Product, error)

	// UpdateProduct replaces a product's mutable fields.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// UpdateProductRank updates only the display-sort rank of a product.
	UpdateProductRank(ctx context.Context, id uuid.UUID, rank int) error

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// CountProductsByBrand returns the true number of products referencing a brand.
	CountProductsByBrand(ctx context.Context, brandID uuid.UUID) (int64, error)

	// CountProductsGroupedByBrand returns the true product count per brand,
	// computed by grouping all products on their brand reference. Brands with no
	// products do not appear in the result.
	CountProductsGroupedByBrand(ctx context.Context) ([]*BrandProductCount, error)
}
