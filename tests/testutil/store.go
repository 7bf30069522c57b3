package testutil

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestCollections wraps a fresh in-memory store with typed collection
// access and a discarding logger.
func NewTestCollections(t *testing.T) (*store.Collections, *store.SQLiteStore) {
	t.Helper()

	s := NewTestStore(t)
	return store.NewCollections(s, zerolog.Nop()), s
}
