package orders

import "strings"

// FilterByKeyword keeps orders with at least one item whose product or option
// name contains keyword. Matching is case-sensitive. An empty keyword returns
// the input unchanged.
func FilterByKeyword(orders []Order, keyword string) []Order {
	if keyword == "" {
		return orders
	}
	filtered := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.matches(keyword) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func (o Order) matches(keyword string) bool {
	for _, item := range o.Items {
		if strings.Contains(item.ProductName, keyword) || strings.Contains(item.OptionName, keyword) {
			return true
		}
	}
	return false
}
