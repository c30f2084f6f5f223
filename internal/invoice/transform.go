// Package invoice flattens orders into packing-ready invoice rows.
package invoice

import (
	"strings"
	"time"

	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/pkg/natsort"
)

const (
	// DefaultDeliveryNote is printed on every invoice. Per-order notes are not supported.
	DefaultDeliveryNote = "구매해 주셔서 감사합니다!"
	// DefaultDateLayout renders dates the way Korean short dates read, e.g. "2024. 5. 1.".
	DefaultDateLayout = "2006. 1. 2."

	LabelSeparator = " // "
)

// Row is one invoice line per order.
type Row struct {
	OrderID        string   `json:"order_id"`
	RecipientName  string   `json:"recipient_name"`
	RecipientPhone string   `json:"recipient_phone"`
	Postcode       string   `json:"postcode"`
	Address        string   `json:"address"`
	AddressDetail  string   `json:"address_detail"`
	Items          string   `json:"items"`
	Labels         []string `json:"-"`
	DeliveryNote   string   `json:"delivery_note"`
	PaidAmount     int64    `json:"paid_amount"`
	Status         string   `json:"status"`
	OrderDate      string   `json:"order_date"`
}

// Options controls how the order date is rendered.
type Options struct {
	Location   *time.Location
	DateLayout string
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		loc, err := time.LoadLocation("Asia/Seoul")
		if err != nil {
			loc = time.UTC
		}
		o.Location = loc
	}
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	return o
}

// ExpandLabels returns one "<product> [<option>]" label per unit, in natural order.
func ExpandLabels(order orders.Order) []string {
	labels := make([]string, 0, order.ItemQuantity())
	for _, item := range order.Items {
		label := item.ProductName + " [" + item.OptionName + "]"
		for i := 0; i < item.Quantity; i++ {
			labels = append(labels, label)
		}
	}
	natsort.Sort(labels)
	return labels
}

// BuildRow converts one order into its invoice row.
func BuildRow(order orders.Order, opts Options) Row {
	opts = opts.withDefaults()
	return buildRow(order, opts)
}

// BuildRows converts every order, preserving input order.
func BuildRows(list []orders.Order, opts Options) []Row {
	opts = opts.withDefaults()
	rows := make([]Row, 0, len(list))
	for _, order := range list {
		rows = append(rows, buildRow(order, opts))
	}
	return rows
}

func buildRow(order orders.Order, opts Options) Row {
	labels := ExpandLabels(order)
	return Row{
		OrderID:        order.ID,
		RecipientName:  order.Shipping.Name,
		RecipientPhone: order.Shipping.Phone,
		Postcode:       order.Shipping.Postcode,
		Address:        order.Shipping.Address,
		AddressDetail:  order.Shipping.AddressDetail,
		Items:          strings.Join(labels, LabelSeparator),
		Labels:         labels,
		DeliveryNote:   DefaultDeliveryNote,
		PaidAmount:     order.PaidAmount,
		Status:         order.Status,
		OrderDate:      order.PaidAt().In(opts.Location).Format(opts.DateLayout),
	}
}
