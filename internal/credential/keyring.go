package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/99designs/keyring"

	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/store"
)

// Open returns a keyring configured from cfg.
func Open(cfg model.KeyringConfig) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: cfg.Service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(cfg.Service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Backend stores each collection record as one keyring item.
type Backend struct {
	ring keyring.Keyring
}

// NewBackend wraps an open keyring as a store.Backend.
func NewBackend(ring keyring.Keyring) *Backend {
	return &Backend{ring: ring}
}

var _ store.Backend = (*Backend)(nil)

// Get retrieves a record from the keyring.
func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	item, err := b.ring.Get(key)
	if isMissing(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting credential %q: %w", key, err)
	}
	return item.Data, nil
}

// Set stores a record in the keyring.
func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	err := b.ring.Set(keyring.Item{
		Key:         key,
		Data:        value,
		Label:       "KodePortal " + key,
		Description: "KodePortal workspace record",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a record from the keyring. Missing records are ignored.
func (b *Backend) Delete(_ context.Context, key string) error {
	err := b.ring.Remove(key)
	if err != nil && !isMissing(err) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// isMissing reports whether err means the item does not exist. The file
// backend returns the raw os error instead of keyring.ErrKeyNotFound.
func isMissing(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist)
}
