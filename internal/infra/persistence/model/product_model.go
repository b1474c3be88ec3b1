package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. BrandID is a soft reference kept
// consistent by the integrity maintainer and the reconciliation sweep, not by a
// database constraint.
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BrandName string    `gorm:"type:varchar(255);not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
