package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. IDs are assigned by the application.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type OrderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderNumber string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	CounterName string    `gorm:"type:varchar(255);not null"`
	Bit         string    `gorm:"type:varchar(64);not null;index"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	Date        string    `gorm:"type:varchar(10);not null"`
	Time        string    `gorm:"type:varchar(8)"`
	TotalItems  int       `gorm:"not null;default:0"`
	TotalAmount float64   `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Lines are exclusively owned by
// their order. ProductID is a soft reference: no foreign key is declared so a
// line survives deletion of its product, readable through the snapshot columns.
type OrderItemModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	BrandName   string    `gorm:"type:varchar(255);not null"`
	Unit        string    `gorm:"type:varchar(16);not null"`
	Quantity    int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
