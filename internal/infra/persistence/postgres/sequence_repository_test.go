package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSequenceRepository_IncrementAndGet_FirstUseCreatesRow(t *testing.T) {
	repo := NewSequenceRepository(openTestDB(t))
	ctx := context.Background()

	value, err := repo.IncrementAndGet(ctx, "order_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, 1, value)

	value, err = repo.IncrementAndGet(ctx, "order_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, 2, value)
}

func TestSequenceRepository_IncrementAndGet_SequencesAreIndependent(t *testing.T) {
	repo := NewSequenceRepository(openTestDB(t))
	ctx := context.Background()

	for range 3 {
		_, err := repo.IncrementAndGet(ctx, "order_numbers")
		require.NoError(t, err)
	}

	value, err := repo.IncrementAndGet(ctx, "invoice_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, 1, value)
}

func TestSequenceRepository_CurrentValue(t *testing.T) {
	repo := NewSequenceRepository(openTestDB(t))
	ctx := context.Background()

	// A sequence that was never touched reads as zero.
	value, err := repo.CurrentValue(ctx, "order_numbers")
	require.NoError(t, err)
	assert.Zero(t, value)

	_, err = repo.IncrementAndGet(ctx, "order_numbers")
	require.NoError(t, err)

	value, err = repo.CurrentValue(ctx, "order_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, 1, value)

	// Reading does not advance the counter.
	value, err = repo.CurrentValue(ctx, "order_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, 1, value)
}

func TestSequenceRepository_IncrementAndGet_ConcurrentCallersGetDistinctValues(t *testing.T) {
	repo := NewSequenceRepository(openTestDB(t))
	ctx := context.Background()

	const callers = 50

	var mu sync.Mutex
	seen := make(map[int64]struct{}, callers)

	g, gctx := errgroup.WithContext(ctx)
	for range callers {
		g.Go(func() error {
			value, err := repo.IncrementAndGet(gctx, "order_numbers")
			if err != nil {
				return err
			}

			mu.Lock()
			seen[value] = struct{}{}
			mu.Unlock()

			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Every caller observed its own value and nothing was skipped.
	assert.Len(t, seen, callers)
	for value := int64(1); value <= callers; value++ {
		assert.Contains(t, seen, value)
	}

	current, err := repo.CurrentValue(ctx, "order_numbers")
	require.NoError(t, err)
	assert.EqualValues(t, callers, current)
}
