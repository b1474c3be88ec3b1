// Package constants defines shared domain constants.
package constants

// Environment names used in configuration.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider types for event publishing.
const (
	// PubSubProviderLocal publishes events to a local HTTP endpoint for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

// Order number allocation strategies.
const (
	// AllocationStrategyCounter reserves numbers through an atomic counter row.
	AllocationStrategyCounter = "counter"
	// AllocationStrategyDerive derives the next number from the current maximum and
	// retries on duplicate collisions.
	AllocationStrategyDerive = "derive"
	// AllocationStrategyRandom draws random numbers and retries on collisions.
	AllocationStrategyRandom = "random"
)

// OrderEvent types published after order state changes.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)
