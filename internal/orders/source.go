package orders

import (
	"context"
	"time"
)

// Window bounds a fetch by payment time, inclusive on both ends.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Source fetches the orders paid within a window.
type Source interface {
	FetchOrders(ctx context.Context, window Window) ([]Order, error)
}

// Named is implemented by sources that report a short name for logs and metrics.
type Named interface {
	Name() string
}

// SourceName reports the name of src when it implements Named.
func SourceName(src Source) string {
	if n, ok := src.(Named); ok {
		return n.Name()
	}
	return "unknown"
}
