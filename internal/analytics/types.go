package analytics

// KPIs summarizes an order collection.
type KPIs struct {
	TotalRevenue      int64   `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	TotalItemsSold    int     `json:"total_items_sold"`
}

// DailyAmount is one point of the daily revenue series.
type DailyAmount struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// NamedValue is a label/value pair such as product revenue or a city count.
type NamedValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// OptionCount counts units sold for a product option.
type OptionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// VIPCustomer accumulates spend for one billing identity.
type VIPCustomer struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	TotalSpent int64  `json:"total_spent"`
	City       string `json:"city"`
}

// SalesOverview bundles the sales tab views.
type SalesOverview struct {
	KPIs     KPIs          `json:"kpis"`
	Daily    []DailyAmount `json:"daily"`
	Products []NamedValue  `json:"products"`
}

// CustomerOverview bundles the customer tab views.
type CustomerOverview struct {
	VIPs   []VIPCustomer `json:"vips"`
	Cities []NamedValue  `json:"cities"`
}
