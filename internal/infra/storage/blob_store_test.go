package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"depot/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T) service.ImageStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewBlobImageStore(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImageStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, store.Save(ctx, "brands/acme", "image/png", payload))

	data, contentType, err := store.Load(ctx, "brands/acme")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)
}

func TestImageStoreSaveOverwritesPreviousContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "brands/acme", "image/png", []byte("first")))
	require.NoError(t, store.Save(ctx, "brands/acme", "image/jpeg", []byte("second")))

	data, contentType, err := store.Load(ctx, "brands/acme")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestImageStoreLoadMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Load(context.Background(), "brands/unknown")
	assert.ErrorIs(t, err, service.ErrImageNotFound)
}

func TestImageStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "brands/acme", "image/png", []byte("logo")))
	require.NoError(t, store.Delete(ctx, "brands/acme"))

	_, _, err := store.Load(ctx, "brands/acme")
	assert.ErrorIs(t, err, service.ErrImageNotFound)

	// Deleting an already-absent key stays silent.
	assert.NoError(t, store.Delete(ctx, "brands/acme"))
}
