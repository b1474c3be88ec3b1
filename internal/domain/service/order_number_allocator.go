package service

import "context"

// OrderNumberAllocator mints candidate order numbers. Exactly one strategy is
// active per deployment, selected by configuration; strategies differ in
// ordering and collision behavior but all produce numbers in one consistent
// format for the deployment.
//
// Next returns a candidate; whether the candidate is guaranteed unique depends
// on the strategy. The caller persists the order with the candidate and, on a
// duplicate-number conflict, asks for a fresh candidate, up to MaxAttempts
// times in total. A caller must never persist an order without a number.
type OrderNumberAllocator interface {
	// Next produces the next candidate order number.
	Next(ctx context.Context) (string, error)

	// MaxAttempts is the allocation attempt bound before the caller reports
	// exhaustion.
	MaxAttempts() int
}
