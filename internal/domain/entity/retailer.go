// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Retailer represents a retail outlet that places orders through a counter.
type Retailer struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the retailer.
	Name      string    `json:"name"`       // Display name of the retailer.
	Phone     string    `json:"phone"`      // Contact phone number, unique across retailers.
	Bit       string    `json:"bit"`        // Sales-territory tag, same enumeration as Order.Bit.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the retailer was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
