package model

import (
	"time"

	"github.com/google/uuid"
)

// BrandModel mirrors the 'brands' table. ProductCount is the denormalized cache
// of products referencing the brand; it is adjusted alongside product writes and
// repaired by the reconciliation sweep when the two drift apart.
type BrandModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ProductCount int64     `gorm:"not null;default:0"`
	Image        string    `gorm:"type:varchar(512)"`
	SortOrder    int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brands"
}
