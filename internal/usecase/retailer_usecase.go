package usecase

import (
	"context"

	"depot/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRetailerInput defines the data required to register a retailer.
type CreateRetailerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Bit   string `json:"bit"`
}

// UpdateRetailerInput defines a retailer edit.
type UpdateRetailerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Bit   string `json:"bit"`
}

// RetailerUsecase defines the interface for retailer management.
type RetailerUsecase interface {
	// CreateRetailer persists a new retailer with a unique phone number.
	CreateRetailer(ctx context.Context, input *CreateRetailerInput) (*entity.Retailer, error)

	// ListRetailers retrieves all retailers by name.
	ListRetailers(ctx context.Context) ([]*entity.Retailer, error)

	// UpdateRetailer edits a retailer's fields.
	UpdateRetailer(ctx context.Context, id uuid.UUID, input *UpdateRetailerInput) (*entity.Retailer, error)

	// DeleteRetailer removes a retailer.
	DeleteRetailer(ctx context.Context, id uuid.UUID) error

	// ListActiveBits retrieves the distinct territory tags retailers are
	// registered under.
	ListActiveBits(ctx context.Context) ([]string, error)
}
