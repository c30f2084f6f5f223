package orders

import (
	"strings"
	"time"
)

// Order is one storefront purchase as fetched during a sync. Orders are
// treated as immutable; a new sync replaces the whole collection.
type Order struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	PaymentDate int64           `json:"payment_date"`
	PaidAmount  int64           `json:"paid_amount"`
	TotalAmount int64           `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
	Billing     BillingContact  `json:"billing"`
	Shipping    ShippingContact `json:"shipping"`
}

// OrderItem is one product/option line. Quantity is always at least 1.
type OrderItem struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	OptionName  string `json:"option_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Status      string `json:"status"`
}

// BillingContact describes who paid. Email may be empty.
type BillingContact struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// ShippingContact describes where the order ships. Address may be empty.
type ShippingContact struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AddressDetail string `json:"address_detail"`
	Postcode      string `json:"postcode"`
}

// IdentityKey returns the billing email, falling back to orderID when no
// email was captured. Orders without an email never merge into one customer.
func (b BillingContact) IdentityKey(orderID string) string {
	if b.Email != "" {
		return b.Email
	}
	return orderID
}

// City returns the first whitespace-delimited token of the address, or "".
func (s ShippingContact) City() string {
	fields := strings.Fields(s.Address)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ItemQuantity sums the quantity of every item on the order.
func (o Order) ItemQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// PaidAt converts the payment timestamp to UTC.
func (o Order) PaidAt() time.Time {
	return time.Unix(o.PaymentDate, 0).UTC()
}
