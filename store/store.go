// Package store defines where converted files are written.
//
// LocalStore writes into a directory, MemoryStore keeps blobs in memory and the minio
// subpackage uploads to MinIO or any S3-compatible bucket.
package store

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist. It maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is a flat namespace of immutable blobs.
type Store interface {
	// Put writes a whole blob atomically, replacing any previous blob of that name.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a whole blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// List returns the sorted names of the blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
