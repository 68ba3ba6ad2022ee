package store

// Backend is the flat key-value persistence contract the store runs on.
// Every write replaces the whole value at a key; there are no transactions
// spanning keys and no partial updates. The backend is chosen once at
// construction, never probed at runtime.
type Backend interface {
	// Get returns the value at key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value at key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// List calls fn for every key with the given prefix, in key order.
	// Returning an error from fn stops iteration and is passed through.
	List(prefix string, fn func(key string, value []byte) error) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)
