package service

import (
	"context"
)

// OrderEvent represents an order state change published for downstream consumers
// (fulfillment planning, notification fan-out).
type OrderEvent struct {
	RequestID   string `json:"request_id,omitempty"` // For distributed tracing
	Type        string `json:"type"`                 // Event type, see constants.OrderEvent*
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CounterName string `json:"counter_name"`
	Bit         string `json:"bit"`
	Status      string `json:"status"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
