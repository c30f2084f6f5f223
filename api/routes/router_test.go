package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/janytree/storefront-dashboard/internal/demo"
	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/report"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev"},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			SyncRateLimit:  5,
			SyncRateWindow: time.Minute,
		},
		Sync: config.SyncConfig{Window: 30 * 24 * time.Hour},
		Report: config.ReportConfig{
			InvoicePreviewLimit:  50,
			GroupBuyPreviewLimit: 10,
			RawPreviewLimit:      5,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	reg := prometheus.NewRegistry()
	store := snapshot.NewMemoryStore()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	syncer, err := ordersync.NewSyncer(ordersync.Params{
		Source:  demo.Source{Count: 20, Seed: 1, Now: func() time.Time { return now }},
		Store:   store,
		Logger:  logg,
		Metrics: metrics.NewSnapshotMetrics(reg),
	})
	if err != nil {
		t.Fatalf("new syncer: %v", err)
	}
	reports, err := report.NewService(store, syncer, invoice.Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("new report service: %v", err)
	}
	return NewRouter(Params{
		Config:   testConfig(),
		Logger:   logg,
		Reports:  reports,
		Syncer:   syncer,
		Location: time.UTC,
		Gatherer: reg,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)
	for _, target := range []string{"/health/live", "/health/ready"} {
		if resp := do(t, router, http.MethodGet, target, ""); resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, resp.Code)
		}
	}
}

func TestReportsBeforeFirstSyncAreEmpty(t *testing.T) {
	router := newTestRouter(t)
	resp := do(t, router, http.MethodGet, "/api/v1/reports/sales", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var env struct {
		Data struct {
			KPIs struct {
				TotalOrders int `json:"total_orders"`
			} `json:"kpis"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.KPIs.TotalOrders != 0 {
		t.Fatalf("expected no orders before sync, got %d", env.Data.KPIs.TotalOrders)
	}
}

func TestSyncThenReport(t *testing.T) {
	router := newTestRouter(t)

	resp := do(t, router, http.MethodPost, "/api/v1/sync", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("sync: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(t, router, http.MethodGet, "/api/v1/sync/status", "")
	var status struct {
		Data ordersync.Status `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Data.State != ordersync.StateDone || status.Data.OrderCount != 20 {
		t.Fatalf("unexpected status %+v", status.Data)
	}

	resp = do(t, router, http.MethodGet, "/api/v1/reports/raw?limit=3", "")
	var raw struct {
		Meta struct {
			Returned int `json:"returned"`
			Total    int `json:"total"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if raw.Meta.Returned != 3 || raw.Meta.Total != 20 {
		t.Fatalf("unexpected raw meta %+v", raw.Meta)
	}

	resp = do(t, router, http.MethodGet, "/api/v1/reports/invoices/export", "")
	if resp.Code != http.StatusOK || resp.Body.Len() == 0 {
		t.Fatalf("export: expected workbook, got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/sync", "")

	resp := do(t, router, http.MethodGet, "/metrics", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "storefront_dashboard_snapshot_orders 20") {
		t.Fatalf("snapshot gauge missing from metrics output")
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)
	if resp := do(t, router, http.MethodGet, "/api/v1/reports/unknown", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
