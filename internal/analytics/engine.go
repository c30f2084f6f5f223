// Package analytics computes reporting views over an order collection.
// Every function is pure and safe to call concurrently on the same input.
package analytics

import (
	"sort"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

const (
	DefaultTopOptionsLimit = 10
	DefaultVIPLimit        = 20

	// UnknownCity labels orders shipped to an empty address.
	UnknownCity = "Unknown"

	dateLayout = "2006-01-02"
)

// CalculateKPIs totals revenue, orders and units. The average order value is
// 0 for an empty collection.
func CalculateKPIs(list []orders.Order) KPIs {
	var kpis KPIs
	for _, order := range list {
		kpis.TotalRevenue += order.PaidAmount
		kpis.TotalItemsSold += order.ItemQuantity()
	}
	kpis.TotalOrders = len(list)
	if kpis.TotalOrders > 0 {
		kpis.AverageOrderValue = float64(kpis.TotalRevenue) / float64(kpis.TotalOrders)
	}
	return kpis
}

// DailyRevenue sums paid amounts per UTC calendar day, ascending by date.
// Days without orders are omitted.
func DailyRevenue(list []orders.Order) []DailyAmount {
	totals := make(map[string]int64)
	for _, order := range list {
		totals[order.PaidAt().Format(dateLayout)] += order.PaidAmount
	}
	out := make([]DailyAmount, 0, len(totals))
	for date, amount := range totals {
		out = append(out, DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ProductRevenue sums quantity x unit price per product, descending by value.
// Ties keep first-encounter order.
func ProductRevenue(list []orders.Order) []NamedValue {
	acc := newAccumulator()
	for _, order := range list {
		for _, item := range order.Items {
			acc.add(item.ProductName, int64(item.Quantity)*item.UnitPrice)
		}
	}
	return acc.ranked()
}

// TopOptions sums quantity per "product - option", descending, truncated to
// limit. A limit <= 0 selects DefaultTopOptionsLimit.
func TopOptions(list []orders.Order, limit int) []OptionCount {
	if limit <= 0 {
		limit = DefaultTopOptionsLimit
	}
	acc := newAccumulator()
	for _, order := range list {
		for _, item := range order.Items {
			acc.add(OptionKey(item), int64(item.Quantity))
		}
	}
	ranked := truncate(acc.ranked(), limit)
	out := make([]OptionCount, 0, len(ranked))
	for _, entry := range ranked {
		out = append(out, OptionCount{Name: entry.Name, Count: int(entry.Value)})
	}
	return out
}

// OptionKey is the compound product/option label used by TopOptions.
func OptionKey(item orders.OrderItem) string {
	return item.ProductName + " - " + item.OptionName
}

// VIPCustomers ranks billing identities by total paid, descending, truncated
// to limit. Name and city come from the first order seen for each identity
// and are not refreshed by later orders. A limit <= 0 selects DefaultVIPLimit.
func VIPCustomers(list []orders.Order, limit int) []VIPCustomer {
	if limit <= 0 {
		limit = DefaultVIPLimit
	}
	index := make(map[string]int)
	out := make([]VIPCustomer, 0)
	for _, order := range list {
		key := order.Billing.IdentityKey(order.ID)
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, VIPCustomer{
				Key:  key,
				Name: order.Billing.Name,
				City: cityOf(order),
			})
		}
		out[pos].Count++
		out[pos].TotalSpent += order.PaidAmount
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent > out[j].TotalSpent })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CityStats counts orders per shipping city, descending.
func CityStats(list []orders.Order) []NamedValue {
	acc := newAccumulator()
	for _, order := range list {
		acc.add(cityOf(order), 1)
	}
	return acc.ranked()
}

// Sales bundles KPIs, daily revenue and product revenue.
func Sales(list []orders.Order) SalesOverview {
	return SalesOverview{
		KPIs:     CalculateKPIs(list),
		Daily:    DailyRevenue(list),
		Products: ProductRevenue(list),
	}
}

// Customers bundles the VIP ranking and the city distribution.
func Customers(list []orders.Order, vipLimit int) CustomerOverview {
	return CustomerOverview{
		VIPs:   VIPCustomers(list, vipLimit),
		Cities: CityStats(list),
	}
}

func cityOf(order orders.Order) string {
	if city := order.Shipping.City(); city != "" {
		return city
	}
	return UnknownCity
}

func truncate(values []NamedValue, limit int) []NamedValue {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

// accumulator sums values by key and remembers first-encounter order so
// ranking never depends on map iteration.
type accumulator struct {
	keys   []string
	totals map[string]int64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]int64)}
}

func (a *accumulator) add(key string, value int64) {
	if _, ok := a.totals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.totals[key] += value
}

func (a *accumulator) ranked() []NamedValue {
	out := make([]NamedValue, 0, len(a.keys))
	for _, key := range a.keys {
		out = append(out, NamedValue{Name: key, Value: a.totals[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}
