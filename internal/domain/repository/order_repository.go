// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"depot/internal/domain/entity"
	"depot/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when persisting an order whose number is already in use.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// OrderListFilter narrows ListOrders. Zero values mean "no restriction".
type OrderListFilter struct {
	// Bit restricts to orders of one territory.
	Bit string
	// Status restricts to one lifecycle status.
	Status entity.OrderStatus
	// Search is a case-insensitive substring match across counter name, order number and bit.
	Search string
}

// DemandFilter narrows AggregatePendingDemand. Zero values mean "no restriction".
type DemandFilter struct {
	// Bit restricts to pending orders of one territory.
	Bit string
	// Brand restricts to lines whose brand name snapshot matches exactly.
	Brand string
}

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// CreateOrder persists a new order together with its line items.
	// Returns ErrDuplicateOrderNumber when the order number is already taken.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order with its line items by its unique ID.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrdersByIDs retrieves the orders matching the given IDs, items included.
	// Unknown IDs are skipped rather than erroring.
	FindOrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Order, error)

	// ListOrders retrieves orders matching the filter, newest first, items included.
	ListOrders(ctx context.Context, filter OrderListFilter) ([]*entity.Order, error)

	// UpdateOrder replaces an order's mutable fields and its line items.
	// The order number is immutable and never rewritten.
	UpdateOrder(ctx context.Context, order *entity.Order) error

	// UpdateOrderStatus updates only the lifecycle status of an order.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// DeleteOrder removes an order and its line items by ID.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// DeleteOrdersByIDs removes the given orders and their line items in one statement.
	// Returns the number of orders actually deleted.
	DeleteOrdersByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// MaxOrderNumberSequence returns the largest numeric suffix among existing order
	// numbers carrying the given prefix, or 0 when none exist. Used by the derive
	// allocation strategy.
	MaxOrderNumberSequence(ctx context.Context, prefix string) (int64, error)

	// AggregatePendingDemand groups the line items of all pending orders by
	// (product, unit) and returns per-group quantity totals, distinct order counts
	// and the distinct contributing order numbers. Grouping and summing are pushed
	// down to the store; the group set is bounded by distinct (product, unit) pairs
	// regardless of pending-order volume.
	AggregatePendingDemand(ctx context.Context, filter DemandFilter) ([]*entity.DemandGroup, error)

	// CountOrders returns the number of orders of any status.
	CountOrders(ctx context.Context) (int64, error)

	// CountOrdersByStatus returns the number of orders with the given status.
	CountOrdersByStatus(ctx context.Context, status entity.OrderStatus) (int64, error)

	// CountDistinctOrderedProducts returns the number of distinct (product, brand)
	// pairs appearing across all order lines.
	CountDistinctOrderedProducts(ctx context.Context) (int64, error)
}
