package service_test

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	backend, err := store.NewBadgerBackend(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	s := store.New(backend, nil, store.NewNoopEmitter(), store.Options{})
	t.Cleanup(func() { s.Close() })
	return s
}

func setupResolver(t *testing.T) (*service.Resolver, *store.Store, *cache.Settings) {
	t.Helper()
	s := setupTestStore(t)
	settings := cache.New()
	resolver := service.NewResolver(s, settings, validation.New(), discardLogger())
	return resolver, s, settings
}

// encodeEvent builds a raw event id the way the host encodes them: base64
// over "<baseId>[_<instanceDate>] <ownerSuffix>".
func encodeEvent(baseID, instanceDate, owner string) string {
	decoded := baseID
	if instanceDate != "" {
		decoded += "_" + instanceDate
	}
	if owner != "" {
		decoded += " " + owner
	}
	return base64.RawStdEncoding.EncodeToString([]byte(decoded))
}

// failingBackend refuses writes so persistence failures can be observed.
type failingBackend struct {
	inner store.Backend
}

var errWriteRefused = errors.New("write refused")

func (f *failingBackend) Get(key string) ([]byte, error) { return f.inner.Get(key) }
func (f *failingBackend) Set(key string, value []byte) error {
	return errWriteRefused
}
func (f *failingBackend) Delete(key string) error { return f.inner.Delete(key) }
func (f *failingBackend) List(prefix string, fn func(key string, value []byte) error) error {
	return f.inner.List(prefix, fn)
}
func (f *failingBackend) Close() error { return f.inner.Close() }
