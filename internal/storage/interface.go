// Package storage stores catalog fixtures and generated exports behind a
// key/value file interface.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no object exists for a key.
var ErrNotFound = errors.New("storage: object not found")

// Metadata describes a stored object.
type Metadata struct {
	ContentType string            `json:"content_type,omitempty"`
	CreatedBy   string            `json:"created_by,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
}

// ObjectInfo describes a stored object without its content.
type ObjectInfo struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	ModifiedAt time.Time `json:"modified_at"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Storage is a flat key/value object store. Keys use forward slashes.
type Storage interface {
	// Put stores content at key, replacing any previous object.
	Put(ctx context.Context, key string, content []byte, metadata *Metadata) error

	// Get returns the content stored at key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Stat returns object information including a sha256 checksum.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys starting with prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
