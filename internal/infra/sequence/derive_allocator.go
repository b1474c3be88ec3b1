package sequence

import (
	"context"

	"depot/internal/domain/repository"
	"depot/internal/domain/service"
)

// deriveAllocator derives candidates from the largest order number already
// persisted. Numbers come out dense and monotonic, but two concurrent callers
// can read the same maximum and collide on the unique index; the caller retries
// with a fresh candidate, which re-reads the maximum. Each attempt costs a
// max-scan over the orders collection.
type deriveAllocator struct {
	orders      repository.OrderRepository
	prefix      string
	digits      int
	maxAttempts int
}

func newDeriveAllocator(orders repository.OrderRepository, prefix string, digits, maxAttempts int) service.OrderNumberAllocator {
	return &deriveAllocator{
		orders:      orders,
		prefix:      prefix,
		digits:      digits,
		maxAttempts: maxAttempts,
	}
}

// Next reads the current maximum sequence and proposes the successor.
func (a *deriveAllocator) Next(ctx context.Context) (string, error) {
	maxSequence, err := a.orders.MaxOrderNumberSequence(ctx, a.prefix)
	if err != nil {
		return "", err
	}

	return formatOrderNumber(a.prefix, a.digits, maxSequence+1), nil
}

// MaxAttempts is the allocation attempt bound before the caller reports
// exhaustion. Under heavy write concurrency candidates keep colliding, so the
// bound is what protects callers from starving.
func (a *deriveAllocator) MaxAttempts() int {
	return a.maxAttempts
}
