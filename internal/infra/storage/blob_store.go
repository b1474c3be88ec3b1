// Package storage provides blob-backed binary storage for brand images.
package storage

import (
	"context"
	"io"
	"log/slog"

	"depot/config"
	"depot/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers registered by URL scheme: file:// for deployments, mem:// for tests.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobImageStore implements service.ImageStore on a gocloud.dev bucket.
type blobImageStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params holds dependencies for the image store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured bucket and returns an ImageStore backed by it.
func NewImageStore(params Params) (service.ImageStore, error) {
	cfg := params.Config.Storage

	bucketURL := "mem://"
	if cfg != nil && cfg.BucketURL != "" {
		bucketURL = cfg.BucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Logger.Info("Image store initialized", slog.String("bucket", bucketURL))

	store := &blobImageStore{
		bucket: bucket,
		logger: params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing image store")

			return store.Close()
		},
	})

	return store, nil
}

// NewBlobImageStore wraps an already-open bucket. Used by tests with mem:// buckets.
func NewBlobImageStore(bucket *blob.Bucket, logger *slog.Logger) service.ImageStore {
	return &blobImageStore{
		bucket: bucket,
		logger: logger,
	}
}

// Save stores the image bytes under the given key, overwriting previous content.
func (s *blobImageStore) Save(ctx context.Context, key string, contentType string, data []byte) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "failed to write image %s", key)
	}

	return nil
}

// Load retrieves the image bytes and content type stored under the key.
func (s *blobImageStore) Load(ctx context.Context, key string) ([]byte, string, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrImageNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to open image %s", key)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read image %s", key)
	}

	return data, reader.ContentType(), nil
}

// Delete removes the image stored under the key. Deleting a missing key is not an error.
func (s *blobImageStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete image %s", key)
	}

	return nil
}

// Close releases the bucket handle.
func (s *blobImageStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// Module provides the image store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewImageStore),
)
