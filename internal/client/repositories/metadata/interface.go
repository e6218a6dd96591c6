// Package metadata is a small key/value store over the local SQLite
// "metadata" table.
package metadata

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("metadata key not found")

type Repository interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
