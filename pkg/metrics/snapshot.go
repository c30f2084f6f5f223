package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotMetrics tracks the freshness and size of the order snapshot.
type SnapshotMetrics struct {
	orders   prometheus.Gauge
	syncedAt prometheus.Gauge
	fetches  *prometheus.CounterVec
}

// NewSnapshotMetrics registers snapshot gauges on the provided registerer.
func NewSnapshotMetrics(reg prometheus.Registerer) *SnapshotMetrics {
	if reg == nil {
		return &SnapshotMetrics{}
	}
	orders := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_orders",
		Help:      "Number of orders in the current snapshot.",
	})
	syncedAt := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_synced_timestamp_seconds",
		Help:      "Unix time of the last successful order sync.",
	})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_fetch_total",
		Help:      "Order fetches from the storefront by source and outcome.",
	}, []string{"source", "outcome"})
	reg.MustRegister(orders, syncedAt, fetches)
	return &SnapshotMetrics{orders: orders, syncedAt: syncedAt, fetches: fetches}
}

// ObserveSnapshot records a freshly stored snapshot.
func (m *SnapshotMetrics) ObserveSnapshot(orderCount int, syncedAt time.Time) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Set(float64(orderCount))
	m.syncedAt.Set(float64(syncedAt.Unix()))
}

// IncFetch counts one fetch attempt against the named source.
func (m *SnapshotMetrics) IncFetch(source string, ok bool) {
	if m == nil || m.fetches == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.fetches.WithLabelValues(normalizeLabel(source), outcome).Inc()
}
