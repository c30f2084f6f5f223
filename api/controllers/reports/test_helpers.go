package reports

import (
	"context"
	"testing"
	"time"

	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/report"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

var fixtureSyncedAt = time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC)

type stubStatus struct{}

func (stubStatus) Status() ordersync.Status {
	return ordersync.Status{State: ordersync.StateDone, Source: "demo"}
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context) (*snapshot.Snapshot, error) { return nil, f.err }
func (f failingStore) Save(context.Context, *snapshot.Snapshot) error { return f.err }

func fixtureOrders() []orders.Order {
	paid := fixtureSyncedAt.Add(-24 * time.Hour).Unix()
	return []orders.Order{
		{
			ID: "ORD-1", PaidAmount: 39000, TotalAmount: 39000, PaymentDate: paid,
			Items:    []orders.OrderItem{{ProductName: "1차 공구 세트", OptionName: "A", Quantity: 2, UnitPrice: 19500}},
			Billing:  orders.BillingContact{Name: "김민준", Email: "kim@example.com"},
			Shipping: orders.ShippingContact{Name: "김민준", Address: "서울시 강남구", Postcode: "06000"},
		},
		{
			ID: "ORD-2", PaidAmount: 25000, TotalAmount: 25000, PaymentDate: paid,
			Items:    []orders.OrderItem{{ProductName: "수분 진정 크림", OptionName: "50ml", Quantity: 1, UnitPrice: 25000}},
			Billing:  orders.BillingContact{Name: "이서연", Email: "lee@example.com"},
			Shipping: orders.ShippingContact{Name: "이서연", Address: "부산시 해운대구", Postcode: "48000"},
		},
		{
			ID: "ORD-3", PaidAmount: 19500, TotalAmount: 19500, PaymentDate: paid,
			Items:    []orders.OrderItem{{ProductName: "1차 공구 세트", OptionName: "B", Quantity: 1, UnitPrice: 19500}},
			Billing:  orders.BillingContact{Name: "김민준", Email: "kim@example.com"},
			Shipping: orders.ShippingContact{Name: "김민준", Address: "서울시 서초구", Postcode: "06500"},
		},
	}
}

func newTestService(t *testing.T, withSnapshot bool) report.Service {
	t.Helper()
	store := snapshot.NewMemoryStore()
	if withSnapshot {
		snap := &snapshot.Snapshot{
			ID:       "sync-1",
			Source:   "demo",
			Orders:   fixtureOrders(),
			Window:   orders.Window{Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), End: fixtureSyncedAt},
			SyncedAt: fixtureSyncedAt,
		}
		if err := store.Save(context.Background(), snap); err != nil {
			t.Fatalf("save snapshot: %v", err)
		}
	}
	return newServiceOver(t, store)
}

func newServiceOver(t *testing.T, store snapshot.Store) report.Service {
	t.Helper()
	svc, err := report.NewService(store, stubStatus{}, invoice.Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}
