package storage

import "github.com/pkg/errors"

//go:generate mockgen -source=backend.go -destination=mocks/backend.go -package=mocks

var (
	// ErrKeyNotFound is returned by Get for keys that were never written.
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrQuotaExceeded is returned by Put when the backend is out of space.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Backend is the raw key-value namespace under the Adapter. Implementations
// persist opaque bytes; serialization and failure recovery live in the
// Adapter. Each key is owned by exactly one repository or manager.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}
