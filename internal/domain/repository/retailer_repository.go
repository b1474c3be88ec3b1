package repository

import (
	"context"

	"depot/internal/domain/entity"
	"depot/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for retailer persistence.
var (
	// ErrRetailerNotFound is returned when a retailer is not found.
	ErrRetailerNotFound = errors.New("retailer not found")
	// ErrDuplicateRetailerPhone is returned when a retailer's phone number is already in use.
	ErrDuplicateRetailerPhone = errors.New("retailer phone already exists")
)

// RetailerRepository defines the interface for retailer-related database operations.
type RetailerRepository interface {
	// CreateRetailer persists a new retailer.
	// Returns ErrDuplicateRetailerPhone when the phone number is already taken.
	CreateRetailer(ctx context.Context, retailer *entity.Retailer) error

	// FindRetailerByID retrieves a retailer by its unique ID.
	FindRetailerByID(ctx context.Context, id uuid.UUID) (*entity.Retailer, error)

	// ListRetailers retrieves all retailers ordered by name.
	ListRetailers(ctx context.Context) ([]*entity.Retailer, error)

	// UpdateRetailer replaces a retailer's mutable fields.
	// Returns ErrDuplicateRetailerPhone when changing to a phone number already taken.
	UpdateRetailer(ctx context.Context, retailer *entity.Retailer) error

	// DeleteRetailer removes a retailer by its ID.
	DeleteRetailer(ctx context.Context, id uuid.UUID) error

	// ListDistinctBits retrieves the distinct territory tags present across retailers.
	ListDistinctBits(ctx context.Context) ([]string, error)
}
