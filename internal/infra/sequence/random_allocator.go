package sequence

import (
	"context"
	"crypto/rand"
	"math/big"

	"depot/internal/domain/service"

	"github.com/pkg/errors"
)

// randomAllocator draws candidates uniformly from a fixed-width numeric space.
// Numbers are neither dense nor ordered, but there is no shared counter to
// contend on and no max-scan; collision probability stays negligible while the
// order count is small against the 10^digits address space. The caller retries
// with a fresh draw on the rare collision.
type randomAllocator struct {
	prefix      string
	digits      int
	maxAttempts int
	space       *big.Int
}

func newRandomAllocator(prefix string, digits, maxAttempts int) service.OrderNumberAllocator {
	space := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	return &randomAllocator{
		prefix:      prefix,
		digits:      digits,
		maxAttempts: maxAttempts,
		space:       space,
	}
}

// Next draws a fresh random candidate.
func (a *randomAllocator) Next(ctx context.Context) (string, error) {
	value, err := rand.Int(rand.Reader, a.space)
	if err != nil {
		return "", errors.Wrap(err, "failed to draw random order number")
	}

	return formatOrderNumber(a.prefix, a.digits, value.Int64()), nil
}

// MaxAttempts is the allocation attempt bound before the caller reports
// exhaustion.
func (a *randomAllocator) MaxAttempts() int {
	return a.maxAttempts
}
