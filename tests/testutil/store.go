package testutil

import (
	"context"
	"testing"

	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/store"
)

// NewTestStore returns an in-memory history store that is closed when the
// test completes.
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

// NewTestSession returns a test store together with a freshly started
// session against the default endpoint.
func NewTestSession(t *testing.T) (*store.SQLiteStore, string) {
	t.Helper()

	s := NewTestStore(t)
	id, err := s.StartSession(context.Background(), model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("starting test session: %v", err)
	}

	return s, id
}
