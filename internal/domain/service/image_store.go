package service

import (
	"context"

	"depot/internal/errors"
)

// ErrImageNotFound is returned when no image is stored under the requested key.
var ErrImageNotFound = errors.New("image not found")

// ImageStore defines the interface for storing and retrieving brand images.
type ImageStore interface {
	// Save stores the image bytes under the given key, overwriting any previous
	// content. contentType is recorded alongside the blob.
	Save(ctx context.Context, key string, contentType string, data []byte) error

	// Load retrieves the image bytes and content type stored under the key.
	Load(ctx context.Context, key string) ([]byte, string, error)

	// Delete removes the image stored under the key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
