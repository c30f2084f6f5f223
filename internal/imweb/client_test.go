package imweb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/pkg/config"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
)

const ordersPayload = `{
  "data": {
    "list": [
      {
        "order_no": "202405010001",
        "order_status": "PAYMENT_COMPLETED",
        "payment_date": 1714521600,
        "pay_price": "53000",
        "total_price": 56000,
        "items": [
          {"item_no": "1", "product_name": "1차 공구 세트", "option_name": "Opt 2", "amount": 1, "price": 25000.4, "status": "PAYMENT_COMPLETED"},
          {"item_no": "2", "product_name": "1차 공구 세트", "option_name": "Opt 10", "amount": 1, "price": "28000", "status": "PAYMENT_COMPLETED"}
        ],
        "billing_person": {"name": "김민준", "email": " kim@example.com ", "tel": "010-1111-2222", "address": "서울 강남구"},
        "shipping_address": {"name": "김민준", "tel": "010-3333-4444", "address": "서울 강남구 테헤란로 1", "address_detail": "101호", "postcode": "06236"}
      }
    ]
  }
}`

type fakeAPI struct {
	authStatus   int
	ordersStatus int
	ordersBody   string
	authCalls    atomic.Int32
	lastQuery    atomic.Value
	lastToken    atomic.Value
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth", func(w http.ResponseWriter, r *http.Request) {
		f.authCalls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("auth expects POST, got %s", r.Method)
		}
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode auth body: %v", err)
		}
		if req.Key != "key" || req.Secret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.authStatus != 0 {
			w.WriteHeader(f.authStatus)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-123"}`))
	})
	mux.HandleFunc("/v2/shop/orders", func(w http.ResponseWriter, r *http.Request) {
		f.lastQuery.Store(r.URL.Query())
		f.lastToken.Store(r.Header.Get(tokenHeader))
		if f.ordersStatus != 0 {
			w.WriteHeader(f.ordersStatus)
			return
		}
		_, _ = w.Write([]byte(f.ordersBody))
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)
	client, err := NewClient(config.ImwebConfig{
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   server.URL + "/v2/",
		Timeout:   5 * time.Second,
		PageLimit: 100,
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func testWindow() orders.Window {
	return orders.Window{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchOrdersMapsPayload(t *testing.T) {
	api := &fakeAPI{ordersBody: ordersPayload}
	client := newTestClient(t, api)

	list, err := client.FetchOrders(context.Background(), testWindow())
	require.NoError(t, err)
	require.Len(t, list, 1)

	order := list[0]
	assert.Equal(t, "202405010001", order.ID)
	assert.Equal(t, int64(53000), order.PaidAmount)
	assert.Equal(t, int64(56000), order.TotalAmount)
	assert.Equal(t, "kim@example.com", order.Billing.Email)
	assert.Equal(t, "서울", order.Shipping.City())
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(25000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(28000), order.Items[1].UnitPrice)

	query := api.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"1714521600"}, query["payment_date_from"])
	assert.Equal(t, []string{"1717113600"}, query["payment_date_to"])
	assert.Equal(t, []string{"100"}, query["limit"])
	assert.Equal(t, "tok-123", api.lastToken.Load())
}

func TestFetchOrdersAuthFailure(t *testing.T) {
	api := &fakeAPI{authStatus: http.StatusForbidden}
	client := newTestClient(t, api)

	_, err := client.FetchOrders(context.Background(), testWindow())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUpstreamAuth), "got %v", err)
}

func TestFetchOrdersUpstreamFailure(t *testing.T) {
	api := &fakeAPI{ordersStatus: http.StatusInternalServerError}
	client := newTestClient(t, api)

	_, err := client.FetchOrders(context.Background(), testWindow())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency), "got %v", err)
}

func TestFetchOrdersRejectsZeroQuantity(t *testing.T) {
	body := strings.Replace(ordersPayload, `"amount": 1, "price": 25000.4`, `"amount": 0, "price": 25000.4`, 1)
	api := &fakeAPI{ordersBody: body}
	client := newTestClient(t, api)

	_, err := client.FetchOrders(context.Background(), testWindow())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, err.Error(), "quantity 0 is below 1")
}

func TestFetchOrdersMalformedJSON(t *testing.T) {
	api := &fakeAPI{ordersBody: `{"data":`}
	client := newTestClient(t, api)

	_, err := client.FetchOrders(context.Background(), testWindow())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency), "got %v", err)
}

func TestToOrdersCombinesErrors(t *testing.T) {
	_, err := toOrders([]orderDTO{
		{OrderNo: ""},
		{OrderNo: "ok"},
		{OrderNo: "bad", Items: []itemDTO{{ItemNo: "x", Amount: 0}}},
	})
	require.Error(t, err)
	assert.Len(t, errorStrings(err), 2)
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient(config.ImwebConfig{APIKey: "key"})
	assert.Error(t, err)
	_, err = NewClient(config.ImwebConfig{APIKey: "key", APISecret: "secret", BaseURL: "::not a url"})
	assert.Error(t, err)
	client, err := NewClient(config.ImwebConfig{APIKey: "key", APISecret: "secret", BaseURL: "https://api.imweb.me/v2"})
	require.NoError(t, err)
	assert.Equal(t, "imweb", client.Name())
	assert.Equal(t, 100, client.pageLimit)
}
