// Package report selects the order subset each dashboard tab needs and runs
// the analytics and invoice transforms over it. It holds no business rules.
package report

import (
	"context"
	"time"

	"github.com/janytree/storefront-dashboard/internal/analytics"
	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
)

// SalesReport backs the sales tab.
type SalesReport struct {
	KPIs     analytics.KPIs          `json:"kpis"`
	Daily    []analytics.DailyAmount `json:"daily"`
	Products []analytics.NamedValue  `json:"products"`
}

// InvoiceReport lists invoice rows; Total counts all rows before any preview cut.
type InvoiceReport struct {
	Rows   []invoice.Row  `json:"rows"`
	Total  int            `json:"total"`
	Window *orders.Window `json:"window,omitempty"`
}

// GroupBuyReport summarizes orders matching a keyword.
type GroupBuyReport struct {
	Keyword       string         `json:"keyword"`
	KPIs          analytics.KPIs `json:"kpis"`
	Orders        []orders.Order `json:"orders"`
	MatchedOrders int            `json:"matched_orders"`
}

// InventoryReport ranks product options by units sold.
type InventoryReport struct {
	TopOptions []analytics.OptionCount `json:"top_options"`
}

// CustomerReport backs the customer tab.
type CustomerReport struct {
	VIPs   []analytics.VIPCustomer `json:"vips"`
	Cities []analytics.NamedValue  `json:"cities"`
}

// RawDataReport previews the synced orders with the sync status.
type RawDataReport struct {
	Orders   []orders.Order   `json:"orders"`
	Total    int              `json:"total"`
	SyncedAt *time.Time       `json:"synced_at,omitempty"`
	Status   ordersync.Status `json:"status"`
}

// StatusProvider reports the latest sync status.
type StatusProvider interface {
	Status() ordersync.Status
}

// Service serves the dashboard reports from the current snapshot.
type Service interface {
	Sales(ctx context.Context) (*SalesReport, error)
	Invoices(ctx context.Context, limit int) (*InvoiceReport, error)
	GroupBuy(ctx context.Context, keyword string, previewLimit int) (*GroupBuyReport, error)
	Inventory(ctx context.Context, limit int) (*InventoryReport, error)
	Customers(ctx context.Context, limit int) (*CustomerReport, error)
	RawOrders(ctx context.Context, limit int) (*RawDataReport, error)
}

type service struct {
	store   snapshot.Store
	status  StatusProvider
	options invoice.Options
}

// NewService builds a report service. status may be nil when the process
// only reads snapshots written elsewhere.
func NewService(store snapshot.Store, status StatusProvider, opts invoice.Options) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "snapshot store required")
	}
	return &service{store: store, status: status, options: opts}, nil
}

func (s *service) Sales(ctx context.Context) (*SalesReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	overview := analytics.Sales(snap.Orders)
	return &SalesReport{KPIs: overview.KPIs, Daily: overview.Daily, Products: overview.Products}, nil
}

// Invoices builds rows for the first limit orders; limit <= 0 builds all of them.
func (s *service) Invoices(ctx context.Context, limit int) (*InvoiceReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rows := invoice.BuildRows(head(snap.Orders, limit), s.options)
	report := &InvoiceReport{Rows: rows, Total: len(snap.Orders)}
	if snap.ID != "" {
		window := snap.Window
		report.Window = &window
	}
	return report, nil
}

func (s *service) GroupBuy(ctx context.Context, keyword string, previewLimit int) (*GroupBuyReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := orders.FilterByKeyword(snap.Orders, keyword)
	return &GroupBuyReport{
		Keyword:       keyword,
		KPIs:          analytics.CalculateKPIs(matched),
		Orders:        head(matched, previewLimit),
		MatchedOrders: len(matched),
	}, nil
}

func (s *service) Inventory(ctx context.Context, limit int) (*InventoryReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &InventoryReport{TopOptions: analytics.TopOptions(snap.Orders, limit)}, nil
}

func (s *service) Customers(ctx context.Context, limit int) (*CustomerReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	overview := analytics.Customers(snap.Orders, limit)
	return &CustomerReport{VIPs: overview.VIPs, Cities: overview.Cities}, nil
}

func (s *service) RawOrders(ctx context.Context, limit int) (*RawDataReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := &RawDataReport{
		Orders: head(snap.Orders, limit),
		Total:  len(snap.Orders),
	}
	if !snap.SyncedAt.IsZero() {
		syncedAt := snap.SyncedAt
		report.SyncedAt = &syncedAt
	}
	if s.status != nil {
		report.Status = s.status.Status()
	} else {
		report.Status = statusFromSnapshot(snap)
	}
	return report, nil
}

// load returns the current snapshot, or an empty one before the first sync.
func (s *service) load(ctx context.Context) (*snapshot.Snapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load order snapshot")
	}
	if snap == nil {
		return &snapshot.Snapshot{Orders: []orders.Order{}}, nil
	}
	return snap, nil
}

func statusFromSnapshot(snap *snapshot.Snapshot) ordersync.Status {
	if snap.ID == "" {
		return ordersync.Status{State: ordersync.StateIdle}
	}
	syncedAt := snap.SyncedAt
	window := snap.Window
	return ordersync.Status{
		State:        ordersync.StateDone,
		LastSyncedAt: &syncedAt,
		SnapshotID:   snap.ID,
		OrderCount:   len(snap.Orders),
		Source:       snap.Source,
		Window:       &window,
	}
}

// head returns at most limit leading orders; limit <= 0 returns all.
func head(list []orders.Order, limit int) []orders.Order {
	if list == nil {
		return []orders.Order{}
	}
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
