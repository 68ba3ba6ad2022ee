package store_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/huecal/huecal-engine/internal/store"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return setupTestStoreWithEmitter(t, store.NewNoopEmitter())
}

func setupTestStoreWithEmitter(t *testing.T, emitter store.Emitter) *store.Store {
	t.Helper()
	backend, err := store.NewBadgerBackend(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	s := store.New(backend, nil, emitter, store.Options{})
	t.Cleanup(func() { s.Close() })
	return s
}

// setupBackends builds one store per backend so shared behavior is exercised
// against both.
func setupBackends(t *testing.T) map[string]*store.Store {
	t.Helper()

	badgerBackend, err := store.NewBadgerBackend(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)

	sqliteBackend, err := store.NewSQLiteBackend(filepath.Join(t.TempDir(), "kv.sqlite"))
	require.NoError(t, err)

	stores := map[string]*store.Store{
		"badger": store.New(badgerBackend, nil, store.NewNoopEmitter(), store.Options{}),
		"sqlite": store.New(sqliteBackend, nil, store.NewNoopEmitter(), store.Options{}),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []store.Event
}

func (r *recordingEmitter) Emit(event store.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEmitter) Events() []store.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]store.Event, len(r.events))
	copy(out, r.events)
	return out
}
