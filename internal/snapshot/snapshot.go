// Package snapshot holds the order collection produced by the latest sync.
// A sync always stores a whole new Snapshot; stored snapshots are never mutated.
package snapshot

import (
	"context"
	"time"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

// Snapshot is the result of one sync.
type Snapshot struct {
	ID       string         `json:"id"`
	Orders   []orders.Order `json:"orders"`
	Window   orders.Window  `json:"window"`
	Source   string         `json:"source"`
	SyncedAt time.Time      `json:"synced_at"`
}

// Len returns the number of orders, treating a nil snapshot as empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Orders)
}

// Store persists the current snapshot.
type Store interface {
	// Load returns the current snapshot, or nil when no sync has completed.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
