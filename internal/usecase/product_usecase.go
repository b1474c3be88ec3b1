package usecase

import (
	"context"

	"depot/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to create a product under a brand.
type CreateProductInput struct {
	Name    string    `json:"name"`
	BrandID uuid.UUID `json:"brand_id"`
	Order   int       `json:"order"`
}

// UpdateProductInput defines a product edit. Changing BrandID moves the
// product to another brand and shifts the cached counts accordingly.
type UpdateProductInput struct {
	Name    string    `json:"name"`
	BrandID uuid.UUID `json:"brand_id"`
	Order   int       `json:"order"`
}

// ProductRankInput is one entry of a batch rank update.
type ProductRankInput struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// ProductUsecase defines the interface for product management. Product writes
// keep the owning brand's cached product count in step as a side effect.
type ProductUsecase interface {
	// CreateProduct verifies the referenced brand exists, persists the product
	// and bumps the brand's cached count.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// ListProducts retrieves products by display rank, optionally for one brand.
	ListProducts(ctx context.Context, brandID *uuid.UUID) ([]*entity.Product, error)

	// UpdateProduct edits a product. A brand change decrements the old brand's
	// count and increments the new one, cascade-deleting the old brand when its
	// count reaches zero.
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// ReorderProducts applies a batch of independent display-rank updates.
	ReorderProducts(ctx context.Context, ranks []ProductRankInput) error

	// DeleteProduct removes a product and decrements the owning brand's count,
	// cascade-deleting the brand when the count reaches zero.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
