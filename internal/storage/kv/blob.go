package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrBlobNotFound is returned by BlobStore.Get when a key has never been
// written. Callers treat it as an empty collection, not a failure.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the flat key-value persistence layer underneath the fallback
// backend. Implementations only need whole-value get and replace; the
// backend always writes full collection snapshots.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

// MemoryBlobStore keeps blobs in process memory. State does not survive
// restarts; used in tests and as a last-resort ephemeral mode.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory blob store
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

var _ BlobStore = (*MemoryBlobStore)(nil)

func (m *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryBlobStore) Set(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[key] = stored
	return nil
}

func (m *MemoryBlobStore) Close() error {
	return nil
}
