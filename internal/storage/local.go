package storage

import (
	"context"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a directory that the server also exposes
// as static files. The returned reference is the public URL path.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Clean("/"+name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}
