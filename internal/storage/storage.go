// ABOUTME: Shared storage types for the document-store backed task and research stores
// ABOUTME: Defines the KV interface satisfied by the charm client and the store error sentinels
package storage

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matches nothing
	ErrNotFound = errors.New("record not found")
	// ErrDimensionMismatch is returned when an embedding does not match the index dimension
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// KV is the narrow document-store contract the stores are built on. The charm
// client satisfies it; tests inject an in-memory fake.
type KV interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
}
