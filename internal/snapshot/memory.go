package snapshot

import (
	"context"
	"errors"
	"sync/atomic"
)

// MemoryStore keeps the snapshot in process memory. Save swaps the pointer
// so concurrent readers see either the old or the new collection.
type MemoryStore struct {
	current atomic.Pointer[Snapshot]
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (*Snapshot, error) {
	return m.current.Load(), nil
}

func (m *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	if snap == nil {
		return errors.New("snapshot is required")
	}
	m.current.Store(snap)
	return nil
}
