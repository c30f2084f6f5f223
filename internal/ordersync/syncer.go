// Package ordersync replaces the order snapshot with a fresh fetch from the storefront.
package ordersync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/metrics"
)

// State of the most recent sync.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// Status is reported by the sync status endpoint.
type Status struct {
	State        State          `json:"state"`
	LastError    string         `json:"last_error,omitempty"`
	LastSyncedAt *time.Time     `json:"last_synced_at,omitempty"`
	SnapshotID   string         `json:"snapshot_id,omitempty"`
	OrderCount   int            `json:"order_count"`
	Source       string         `json:"source"`
	Window       *orders.Window `json:"window,omitempty"`
}

// Params wires a Syncer.
type Params struct {
	Source  orders.Source
	Store   snapshot.Store
	Logger  *logger.Logger
	Metrics *metrics.SnapshotMetrics
}

// Syncer runs one sync at a time; concurrent callers wait their turn.
type Syncer struct {
	source  orders.Source
	store   snapshot.Store
	logg    *logger.Logger
	metrics *metrics.SnapshotMetrics

	run sync.Mutex

	mu     sync.RWMutex
	status Status
}

// NewSyncer validates params and returns an idle Syncer.
func NewSyncer(params Params) (*Syncer, error) {
	if params.Source == nil {
		return nil, errors.New("order source required")
	}
	if params.Store == nil {
		return nil, errors.New("snapshot store required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	return &Syncer{
		source:  params.Source,
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		status:  Status{State: StateIdle, Source: orders.SourceName(params.Source)},
	}, nil
}

// Sync fetches orders paid within window and stores them as the new snapshot.
// On failure the previous snapshot stays in place.
func (s *Syncer) Sync(ctx context.Context, window orders.Window) (*snapshot.Snapshot, error) {
	if window.End.Before(window.Start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sync window end is before start")
	}
	s.run.Lock()
	defer s.run.Unlock()

	syncID := uuid.NewString()
	sourceName := orders.SourceName(s.source)
	ctx = s.logg.WithSyncID(ctx, syncID)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"source":       sourceName,
		"window_start": window.Start.Format(time.RFC3339),
		"window_end":   window.End.Format(time.RFC3339),
	})
	s.setState(StateSyncing, "")
	s.logg.Info(ctx, "order sync started")

	list, err := s.source.FetchOrders(ctx, window)
	s.metrics.IncFetch(sourceName, err == nil)
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("fetch orders: %w", err))
	}

	snap := &snapshot.Snapshot{
		ID:       syncID,
		Orders:   list,
		Window:   window,
		Source:   sourceName,
		SyncedAt: timeNowUTC(),
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, s.fail(ctx, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store order snapshot"))
	}
	s.metrics.ObserveSnapshot(len(list), snap.SyncedAt)

	s.mu.Lock()
	syncedAt := snap.SyncedAt
	s.status = Status{
		State:        StateDone,
		LastSyncedAt: &syncedAt,
		SnapshotID:   snap.ID,
		OrderCount:   len(list),
		Source:       sourceName,
		Window:       &window,
	}
	s.mu.Unlock()

	s.logg.Info(s.logg.WithField(ctx, "order_count", len(list)), "order sync completed")
	return snap, nil
}

// Status returns a copy of the latest sync status.
func (s *Syncer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Syncer) setState(state State, lastErr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = state
	s.status.LastError = lastErr
}

func (s *Syncer) fail(ctx context.Context, err error) error {
	message := err.Error()
	if typed := pkgerrors.As(err); typed != nil {
		message = typed.Message()
	}
	s.setState(StateFailed, message)
	s.logg.Error(ctx, "order sync failed", err)
	return err
}
