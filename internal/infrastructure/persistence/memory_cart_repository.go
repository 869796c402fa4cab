package persistence

import (
	"context"
	"sync"

	"github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/shared"
)

// MemoryCartRepository keeps encoded snapshots in a map. Used when the
// server runs without a database, e.g. local development.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

var _ cart.Repository = (*MemoryCartRepository)(nil)

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{snaps: make(map[string][]byte)}
}

func (r *MemoryCartRepository) Load(_ context.Context, key string) (*cart.Snapshot, error) {
	r.mu.RLock()
	data, ok := r.snaps[key]
	r.mu.RUnlock()
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cart.DecodeSnapshot(data)
}

func (r *MemoryCartRepository) Save(_ context.Context, key string, snap *cart.Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.snaps[key] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryCartRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snaps[key]; !ok {
		return shared.ErrNotFound
	}
	delete(r.snaps, key)
	return nil
}
