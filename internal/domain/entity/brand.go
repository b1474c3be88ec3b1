// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a product brand. ProductCount is a denormalized cache of the
// number of products referencing the brand; it can drift under partial failures
// and is repaired by the reconciliation sweep. A brand whose product count
// reaches zero is deleted rather than kept empty.
type Brand struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the brand.
	Name         string    `json:"name"`          // Display name, unique across brands.
	ProductCount int       `json:"product_count"` // Cached count of products owned by this brand.
	Image        string    `json:"image"`         // Storage key of the brand image, empty when none uploaded.
	Order        int       `json:"order"`         // Display-sort rank.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of when the brand was created.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}
