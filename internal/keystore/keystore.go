// Package keystore provides object storage access for per-tenant key material
// using gocloud.dev/blob. Buckets are opened by URL, so the same code runs
// against GCS, S3, the local filesystem, or an in-memory bucket in tests.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/holograph/vault/internal/errors"

	// Register blob drivers for the supported storage backends.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// KeyStore reads and writes key material objects at deterministic paths.
// Implementations must map a missing object to apperrors.ErrNotFound.
type KeyStore interface {
	// Get reads the full object at path. Returns ErrNotFound if absent.
	Get(ctx context.Context, path string) ([]byte, error)
	// Put writes the object at path, replacing any existing content.
	Put(ctx context.Context, path string, data []byte) error
	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
	// DeletePrefix removes every object under the prefix, best effort. Individual
	// delete failures are logged and collected; iteration continues.
	DeletePrefix(ctx context.Context, prefix string) error
	// Close releases the underlying bucket resources.
	Close() error
}

// blobKeyStore implements KeyStore on top of a gocloud.dev blob bucket.
type blobKeyStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Open opens the keystore bucket at the given gocloud.dev URL
// (e.g., "gs://holograph-keys", "file:///var/lib/holograph/keys", "mem://").
func Open(ctx context.Context, bucketURL string, logger *slog.Logger) (KeyStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore bucket: %w", err)
	}
	return New(bucket, logger), nil
}

// New wraps an already-open bucket. Used by tests and by callers that share a
// bucket between components.
func New(bucket *blob.Bucket, logger *slog.Logger) KeyStore {
	return &blobKeyStore{bucket: bucket, logger: logger}
}

// Get reads the full object at path.
func (s *blobKeyStore) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, path)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "object %q", path)
		}
		return nil, fmt.Errorf("failed to read object %q: %w", path, err)
	}
	return data, nil
}

// Put writes the object at path.
func (s *blobKeyStore) Put(ctx context.Context, path string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, path, data, nil); err != nil {
		return fmt.Errorf("failed to write object %q: %w", path, err)
	}
	return nil
}

// Delete removes the object at path, treating a missing object as success.
func (s *blobKeyStore) Delete(ctx context.Context, path string) error {
	if err := s.bucket.Delete(ctx, path); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete object %q: %w", path, err)
	}
	return nil
}

// DeletePrefix removes every object under the prefix. Failures on individual
// objects are logged and joined into the returned error, but never stop the
// iteration: the caller is tearing the tenant down regardless.
func (s *blobKeyStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.bucket.List(&blob.ListOptions{Prefix: prefix})

	var deleteErrs []error
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}

		if err := s.bucket.Delete(ctx, obj.Key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
			s.logger.Warn("failed to delete object during prefix cleanup",
				slog.String("key", obj.Key),
				slog.Any("error", err),
			)
			deleteErrs = append(deleteErrs, fmt.Errorf("delete %q: %w", obj.Key, err))
		}
	}

	return errors.Join(deleteErrs...)
}

// Close releases the underlying bucket.
func (s *blobKeyStore) Close() error {
	return s.bucket.Close()
}
