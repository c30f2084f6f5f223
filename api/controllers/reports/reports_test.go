package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/janytree/storefront-dashboard/internal/export"
)

type previewEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Limit    int `json:"limit"`
		Returned int `json:"returned"`
		Total    int `json:"total"`
	} `json:"meta"`
}

func serve(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodePreview(t *testing.T, resp *httptest.ResponseRecorder) previewEnvelope {
	t.Helper()
	var env previewEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestSalesReturnsKPIs(t *testing.T) {
	resp := serve(t, Sales(newTestService(t, true), testLogger()), "/api/v1/reports/sales")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var env struct {
		Data struct {
			KPIs struct {
				TotalRevenue int64 `json:"total_revenue"`
				TotalOrders  int   `json:"total_orders"`
			} `json:"kpis"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.KPIs.TotalOrders != 3 || env.Data.KPIs.TotalRevenue != 83500 {
		t.Fatalf("unexpected kpis %+v", env.Data.KPIs)
	}
}

func TestInvoicesPreviewMeta(t *testing.T) {
	handler := Invoices(newTestService(t, true), Limits{InvoicePreview: 50}, testLogger())
	resp := serve(t, handler, "/api/v1/reports/invoices?limit=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	env := decodePreview(t, resp)
	if env.Meta.Limit != 2 || env.Meta.Returned != 2 || env.Meta.Total != 3 {
		t.Fatalf("unexpected meta %+v", env.Meta)
	}
}

func TestInvoicesDefaultLimit(t *testing.T) {
	handler := Invoices(newTestService(t, true), Limits{InvoicePreview: 50}, testLogger())
	env := decodePreview(t, serve(t, handler, "/api/v1/reports/invoices"))
	if env.Meta.Limit != 50 || env.Meta.Returned != 3 {
		t.Fatalf("unexpected meta %+v", env.Meta)
	}
}

func TestInvoicesRejectsBadLimit(t *testing.T) {
	handler := Invoices(newTestService(t, true), Limits{InvoicePreview: 50}, testLogger())
	for _, target := range []string{"/x?limit=abc", "/x?limit=0", "/x?limit=100000"} {
		if resp := serve(t, handler, target); resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.Code)
		}
	}
}

func TestGroupBuyFiltersByKeyword(t *testing.T) {
	handler := GroupBuy(newTestService(t, true), Limits{GroupBuyPreview: 10}, testLogger())
	resp := serve(t, handler, "/api/v1/reports/group-buy?keyword=%EA%B3%B5%EA%B5%AC")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	env := decodePreview(t, resp)
	if env.Meta.Total != 2 || env.Meta.Returned != 2 {
		t.Fatalf("expected 2 matched orders, got %+v", env.Meta)
	}
}

func TestInventoryAndCustomers(t *testing.T) {
	svc := newTestService(t, true)

	resp := serve(t, Inventory(svc, testLogger()), "/api/v1/reports/inventory?limit=1")
	if resp.Code != http.StatusOK {
		t.Fatalf("inventory: expected 200, got %d", resp.Code)
	}
	var inv struct {
		Data struct {
			TopOptions []struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			} `json:"top_options"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		t.Fatalf("decode inventory: %v", err)
	}
	if len(inv.Data.TopOptions) != 1 || inv.Data.TopOptions[0].Count != 2 {
		t.Fatalf("unexpected top options %+v", inv.Data.TopOptions)
	}

	resp = serve(t, Customers(svc, testLogger()), "/api/v1/reports/customers")
	if resp.Code != http.StatusOK {
		t.Fatalf("customers: expected 200, got %d", resp.Code)
	}
}

func TestRawOrdersEmptySnapshot(t *testing.T) {
	handler := RawOrders(newTestService(t, false), Limits{RawPreview: 5}, testLogger())
	resp := serve(t, handler, "/api/v1/reports/raw")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	env := decodePreview(t, resp)
	if env.Meta.Total != 0 || env.Meta.Returned != 0 {
		t.Fatalf("expected empty preview, got %+v", env.Meta)
	}
}

func TestStoreFailureMapsToServiceUnavailable(t *testing.T) {
	svc := newServiceOver(t, failingStore{err: errors.New("redis down")})
	resp := serve(t, Sales(svc, testLogger()), "/api/v1/reports/sales")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestExportInvoicesWritesWorkbook(t *testing.T) {
	resp := serve(t, ExportInvoices(newTestService(t, true), testLogger()), "/api/v1/reports/invoices/export")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	want := `attachment; filename="invoices_20240501_20240531.xlsx"`
	if got := resp.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("unexpected disposition %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.InvoiceSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
}
