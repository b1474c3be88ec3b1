// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable item owned by exactly one brand at a time.
type Product struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the product.
	Name      string    `json:"name"`       // Display name of the product.
	BrandID   uuid.UUID `json:"brand_id"`   // The owning brand, exclusive reference.
	BrandName string    `json:"brand_name"` // Brand name snapshot taken when the product was (re)assigned.
	Order     int       `json:"order"`      // Display-sort rank, mutable independent of creation order.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the product was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
