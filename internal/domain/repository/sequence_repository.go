package repository

import "context"

// SequenceRepository defines the interface for named allocation sequences backing
// the atomic-counter order numbering strategy.
type SequenceRepository interface {
	// IncrementAndGet atomically increments the named sequence and returns the new
	// value. The row is created with value 1 when the sequence does not exist yet.
	// Increment and read happen in one store operation, so concurrent callers each
	// observe a distinct value.
	IncrementAndGet(ctx context.Context, name string) (int64, error)

	// CurrentValue returns the current value of the named sequence without
	// incrementing it, or 0 when the sequence does not exist.
	CurrentValue(ctx context.Context, name string) (int64, error)
}
