// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderDateLayout is the day/month/year layout order dates are captured in.
const OrderDateLayout = "02/01/2006"

// OrderTimeLayout is the wall-clock layout order times are captured in.
const OrderTimeLayout = "15:04"

// Order represents a counter's order for branded products.
type Order struct {
	ID          uuid.UUID   `json:"id"`           // The Global Unique Identifier (GUID) for the order.
	OrderNumber string      `json:"order_number"` // Human-facing number, globally unique, immutable once assigned.
	CounterName string      `json:"counter_name"` // Name of the retail counter that placed the order.
	Bit         string      `json:"bit"`          // Sales-territory tag, drawn from the configured bit list.
	Status      OrderStatus `json:"status"`       // Lifecycle status, Pending or Completed.
	Date        string      `json:"date"`         // Order date in day/month/year form, captured at creation.
	Time        string      `json:"time"`         // Order wall-clock time, captured at creation.
	TotalItems  int         `json:"total_items"`  // Number of line items on the order.
	TotalAmount float64     `json:"total_amount"` // Monetary total of the order.
	Items       []OrderItem `json:"items"`        // Ordered line items, exclusively owned by this order.
	CreatedAt   time.Time   `json:"created_at"`   // Timestamp of when the order was created.
	UpdatedAt   time.Time   `json:"updated_at"`   // Timestamp of the last modification.
}

// OrderItem is a single line of an order. It references a product but carries
// name/brand/unit snapshots taken at order-creation time, so the line stays
// readable after the product is renamed or deleted. Snapshots are never
// refreshed retroactively.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`   // The product ordered, as referenced at creation time.
	ProductName string    `json:"product_name"` // Product name snapshot.
	BrandName   string    `json:"brand_name"`   // Brand name snapshot.
	Unit        Unit      `json:"unit"`         // Unit of measure, Pc, Outer or Case.
	Quantity    int       `json:"quantity"`     // Ordered quantity, at least 1.
}

// ParseOrderDate parses an order date in day/month/year form.
func ParseOrderDate(s string) (time.Time, error) {
	return time.Parse(OrderDateLayout, s)
}
