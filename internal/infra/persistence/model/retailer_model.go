package model

import (
	"time"

	"github.com/google/uuid"
)

// RetailerModel mirrors the 'retailers' table.
type RetailerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Bit       string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RetailerModel) TableName() string {
	return "retailers"
}
