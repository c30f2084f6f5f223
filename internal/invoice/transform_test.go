package invoice

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

func TestExpandLabelsRepeatsPerUnit(t *testing.T) {
	order := orders.Order{Items: []orders.OrderItem{
		{ProductName: "A", OptionName: "X", Quantity: 2},
		{ProductName: "A", OptionName: "Y", Quantity: 1},
	}}
	labels := ExpandLabels(order)
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %v", labels)
	}
	counts := map[string]int{}
	for _, l := range labels {
		counts[l]++
	}
	if counts["A [X]"] != 2 || counts["A [Y]"] != 1 {
		t.Fatalf("unexpected label counts %v", counts)
	}

	row := BuildRow(order, Options{})
	if n := strings.Count(row.Items, LabelSeparator); n != 2 {
		t.Fatalf("expected 2 separators, got %d in %q", n, row.Items)
	}
	if row.Items != "A [X] // A [X] // A [Y]" {
		t.Fatalf("unexpected joined items %q", row.Items)
	}
}

func TestExpandLabelsNaturalOrder(t *testing.T) {
	order := orders.Order{Items: []orders.OrderItem{
		{ProductName: "Set", OptionName: "Opt 10", Quantity: 1},
		{ProductName: "Set", OptionName: "Opt 2", Quantity: 1},
	}}
	row := BuildRow(order, Options{})
	if row.Items != "Set [Opt 2] // Set [Opt 10]" {
		t.Fatalf("expected Opt 2 before Opt 10, got %q", row.Items)
	}
}

func TestLabelCountMatchesQuantities(t *testing.T) {
	order := orders.Order{Items: []orders.OrderItem{
		{ProductName: "수분 진정 크림", OptionName: "100ml (2개입)", Quantity: 3},
		{ProductName: "시카 마스크팩", OptionName: "10매입", Quantity: 2},
		{ProductName: "비타민 C 세럼", OptionName: "기본 패키지", Quantity: 1},
	}}
	if got := len(ExpandLabels(order)); got != order.ItemQuantity() {
		t.Fatalf("expected %d labels, got %d", order.ItemQuantity(), got)
	}
}

func TestBuildRowCopiesShippingFields(t *testing.T) {
	order := orders.Order{
		ID:          "ORD-20230001",
		Status:      "PAYMENT_COMPLETED",
		PaymentDate: time.Date(2024, 4, 30, 16, 30, 0, 0, time.UTC).Unix(),
		PaidAmount:  42000,
		Items:       []orders.OrderItem{{ProductName: "세럼", OptionName: "기본", Quantity: 1}},
		Shipping: orders.ShippingContact{
			Name:          "박지훈",
			Phone:         "010-1234-5678",
			Address:       "서울특별시 강남구 테헤란로 1",
			AddressDetail: "101동 202호",
			Postcode:      "06236",
		},
	}
	row := BuildRow(order, Options{})
	want := Row{
		OrderID:        "ORD-20230001",
		RecipientName:  "박지훈",
		RecipientPhone: "010-1234-5678",
		Postcode:       "06236",
		Address:        "서울특별시 강남구 테헤란로 1",
		AddressDetail:  "101동 202호",
		Items:          "세럼 [기본]",
		DeliveryNote:   DefaultDeliveryNote,
		PaidAmount:     42000,
		Status:         "PAYMENT_COMPLETED",
		// 16:30 UTC is already the next day in Seoul
		OrderDate: "2024. 5. 1.",
	}
	want.Labels = []string{"세럼 [기본]"}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("unexpected row\n got %+v\nwant %+v", row, want)
	}
}

func TestBuildRowCustomLayout(t *testing.T) {
	order := orders.Order{PaymentDate: time.Date(2024, 4, 30, 16, 30, 0, 0, time.UTC).Unix()}
	row := BuildRow(order, Options{Location: time.UTC, DateLayout: "2006-01-02"})
	if row.OrderDate != "2024-04-30" {
		t.Fatalf("unexpected date %q", row.OrderDate)
	}
	if row.Items != "" || len(row.Labels) != 0 {
		t.Fatalf("order without items should have no labels, got %q", row.Items)
	}
}

func TestBuildRowsPreservesOrder(t *testing.T) {
	rows := BuildRows([]orders.Order{{ID: "b"}, {ID: "a"}}, Options{})
	if len(rows) != 2 || rows[0].OrderID != "b" || rows[1].OrderID != "a" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows := BuildRows(nil, Options{}); rows == nil {
		t.Fatalf("expected empty non-nil rows")
	}
}
