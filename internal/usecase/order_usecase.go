// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"depot/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// OrderItemInput is one requested line of a new order. The product/brand name
// snapshot is resolved from the referenced product at creation time, not
// trusted from the caller.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Unit      string    `json:"unit"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderInput defines the data required to place a new order.
// Date and Time default to the creation instant when left empty.
type CreateOrderInput struct {
	CounterName string           `json:"counter_name"`
	Bit         string           `json:"bit"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	TotalAmount float64          `json:"total_amount"`
	Items       []OrderItemInput `json:"items"`
}

// OrderItemEdit is one full line of an order edit. Unlike creation, the
// snapshot fields are carried as-is: an edited order must stay intact even
// when a referenced product has since been renamed or deleted.
type OrderItemEdit struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	BrandName   string    `json:"brand_name"`
	Unit        string    `json:"unit"`
	Quantity    int       `json:"quantity"`
}

// UpdateOrderInput defines a full-document order edit. The order number is
// immutable and absent here.
type UpdateOrderInput struct {
	CounterName string          `json:"counter_name"`
	Bit         string          `json:"bit"`
	Status      string          `json:"status"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	TotalAmount float64         `json:"total_amount"`
	Items       []OrderItemEdit `json:"items"`
}

// OrderListInput narrows ListOrders. Empty fields mean "no restriction".
type OrderListInput struct {
	Bit    string
	Status string
	Search string
}

// DemandInput narrows the pending-demand aggregation. Empty fields mean
// "no restriction".
type DemandInput struct {
	Bit   string
	Brand string
}

// --- Output DTOs ---

// CleanupOutput reports a retention sweep run.
type CleanupOutput struct {
	DeletedCount int64 `json:"deleted_count"`
}

// OrderUsecase defines the interface for order lifecycle and planning operations.
type OrderUsecase interface {
	// CreateOrder validates the input, allocates a unique order number and
	// persists the order with status Pending.
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder retrieves one order with its line items.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves orders matching the filter, newest first.
	ListOrders(ctx context.Context, input *OrderListInput) ([]*entity.Order, error)

	// UpdateOrder replaces an order's mutable fields and line items.
	UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error)

	// UpdateOrderStatus transitions an order between Pending and Completed.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error)

	// DeleteOrder removes one order.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// PendingDemand aggregates outstanding quantities across all pending orders,
	// grouped by (product, unit) and bucketed by unit.
	PendingDemand(ctx context.Context, input *DemandInput) (*entity.DemandSummary, error)

	// DashboardStats summarizes the whole order book.
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)

	// CleanupCompletedOrders deletes, from the given candidates, the orders that
	// are Completed and dated outside the retention window. Candidates not
	// meeting both conditions are silently skipped.
	CleanupCompletedOrders(ctx context.Context, ids []uuid.UUID) (*CleanupOutput, error)
}
