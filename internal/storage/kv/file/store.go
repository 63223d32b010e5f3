// Package file persists key-value blobs as one JSON file per key inside a
// data directory, the on-device storage analog of the mobile client.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/numberrush/numberrush/internal/storage/kv"
)

// Store is a file-backed blob store
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store over it
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

var _ kv.BlobStore = (*Store)(nil)

func (s *Store) path(key string) string {
	// Keys contain ':' separators, which are not portable in file names
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(s.dir, name)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kv.ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set replaces the blob atomically: a torn write leaves the previous
// snapshot intact rather than a truncated file.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
