package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileTooLarge = errors.New("storage: file exceeds maximum upload size")
	ErrNotFound     = errors.New("storage: file not found")
)

// SavedFile describes a stored upload
type SavedFile struct {
	// Key is the storage-relative identifier, e.g. "receipts/1a2b3c.pdf"
	Key string
	// URL is the public URL the frontend can fetch
	URL string
	// Size in bytes
	Size int64
}

// Store persists uploaded files (order receipts, sheet music, audio)
type Store interface {
	// Save writes the content of r under the given folder, keeping ext as
	// the file extension. The stored name is generated, never caller-chosen.
	Save(ctx context.Context, folder, ext string, r io.Reader) (*SavedFile, error)
	// Remove deletes a stored file by key. Removing a missing file is not an error.
	Remove(ctx context.Context, key string) error
}
