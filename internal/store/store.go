package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// Backend is a durable key-value store holding serialized collections.
// Values are written and read back whole; there are no partial writes.
//
// Values are stored as given. Encryption, if ever needed, belongs in a
// Backend wrapper so callers stay unchanged.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
