package storage

import "context"

//go:generate moq -out backend_mock.go . Backend

// Backend defines the raw key-value persistence used on the client.
// This is the lowest storage layer - it works with already serialized values
// and doesn't know anything about records stored in them.
type Backend interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing the previous one atomically
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix in ascending byte order.
	// Empty prefix returns every key
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes all keys (forgotten access code reset)
	Clear(ctx context.Context) error

	// Close releases the underlying database
	Close() error
}
