package storage

import (
	"context"
	"errors"
	"io"
)

// ErrKeyExists is returned by SaveNew when the target key is already
// occupied. Uploads never silently replace an existing blob.
var ErrKeyExists = errors.New("storage: key already exists")

// Provider is the blob store abstraction. Keys are slash-separated
// paths such as "submissions/<uuid>.jpg".
type Provider interface {
	// SaveNew writes a blob under key with no-overwrite semantics:
	// the write fails with ErrKeyExists if the key is taken.
	SaveNew(ctx context.Context, key string, file io.Reader, size int64, contentType string) error

	// Get opens the blob stored under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Health checks that the backing store is reachable.
	Health(ctx context.Context) error

	// Name returns the provider name.
	Name() string
}
