package ordersync

import (
	"time"

	"github.com/janytree/storefront-dashboard/internal/orders"
)

// DefaultWindow covers span back from now, starting at midnight in now's location.
func DefaultWindow(now time.Time, span time.Duration) orders.Window {
	start := startOfDay(now.Add(-span))
	return orders.Window{Start: start, End: now}
}

// WindowForDates covers whole calendar days from start through end, in loc.
func WindowForDates(start, end time.Time, loc *time.Location) orders.Window {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	through := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).Add(-time.Second)
	return orders.Window{Start: from, End: through}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
