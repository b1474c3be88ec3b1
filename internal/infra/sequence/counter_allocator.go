package sequence

import (
	"context"

	"depot/internal/domain/repository"
	"depot/internal/domain/service"
)

// orderNumberSequence is the name of the counter row backing order numbering.
const orderNumberSequence = "order_numbers"

// counterAllocator reserves numbers through a single counter row incremented
// atomically in the store. Every call observes a distinct value, so numbers are
// unique and monotonic with no retry loop; allocation order is linearizable.
type counterAllocator struct {
	sequences   repository.SequenceRepository
	prefix      string
	digits      int
	maxAttempts int
}

func newCounterAllocator(sequences repository.SequenceRepository, prefix string, digits, maxAttempts int) service.OrderNumberAllocator {
	return &counterAllocator{
		sequences:   sequences,
		prefix:      prefix,
		digits:      digits,
		maxAttempts: maxAttempts,
	}
}

// Next reserves the next counter value and formats it as an order number.
func (a *counterAllocator) Next(ctx context.Context) (string, error) {
	value, err := a.sequences.IncrementAndGet(ctx, orderNumberSequence)
	if err != nil {
		return "", err
	}

	return formatOrderNumber(a.prefix, a.digits, value), nil
}

// MaxAttempts is the allocation attempt bound. Counter candidates never
// collide, so the bound only covers transient store failures in the caller.
func (a *counterAllocator) MaxAttempts() int {
	return a.maxAttempts
}
