package storage

import "context"

// Store persists a decoded media blob and returns the public reference
// that gets written into the owning document in place of the raw bytes.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}
