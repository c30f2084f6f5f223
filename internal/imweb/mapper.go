package imweb

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

// toOrders maps the wire list into the order schema. Any invalid order fails
// the whole batch, and every invalid order is listed in the combined error.
func toOrders(list []orderDTO) ([]orders.Order, error) {
	out := make([]orders.Order, 0, len(list))
	var errs error
	for i, dto := range list {
		order, err := dto.toOrder()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %d (%s): %w", i, dto.OrderNo, err))
			continue
		}
		out = append(out, order)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (d orderDTO) toOrder() (orders.Order, error) {
	if strings.TrimSpace(d.OrderNo) == "" {
		return orders.Order{}, fmt.Errorf("missing order_no")
	}
	paid := toMinorUnits(d.PayPrice)
	if paid < 0 {
		return orders.Order{}, fmt.Errorf("negative pay_price %s", d.PayPrice)
	}
	items := make([]orders.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Amount < 1 {
			return orders.Order{}, fmt.Errorf("item %s: quantity %d is below 1", item.ItemNo, item.Amount)
		}
		price := toMinorUnits(item.Price)
		if price < 0 {
			return orders.Order{}, fmt.Errorf("item %s: negative price %s", item.ItemNo, item.Price)
		}
		items = append(items, orders.OrderItem{
			ID:          item.ItemNo,
			ProductName: item.ProductName,
			OptionName:  item.OptionName,
			Quantity:    item.Amount,
			UnitPrice:   price,
			Status:      item.Status,
		})
	}
	return orders.Order{
		ID:          d.OrderNo,
		Status:      d.OrderStatus,
		PaymentDate: d.PaymentDate,
		PaidAmount:  paid,
		TotalAmount: toMinorUnits(d.TotalPrice),
		Items:       items,
		Billing: orders.BillingContact{
			Name:    d.BillingPerson.Name,
			Email:   strings.TrimSpace(d.BillingPerson.Email),
			Phone:   d.BillingPerson.Tel,
			Address: d.BillingPerson.Address,
		},
		Shipping: orders.ShippingContact{
			Name:          d.ShippingAddress.Name,
			Phone:         d.ShippingAddress.Tel,
			Address:       d.ShippingAddress.Address,
			AddressDetail: d.ShippingAddress.AddressDetail,
			Postcode:      d.ShippingAddress.Postcode,
		},
	}, nil
}

// KRW has no minor unit; fractional amounts round half away from zero.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}
