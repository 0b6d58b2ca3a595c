package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	accounts        prometheus.Gauge
	orphans         prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerview_refresh_total",
			Help: "Total snapshot refreshes by result",
		}, []string{"result"}),
		refreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerview_refresh_duration_seconds",
			Help:    "Snapshot refresh duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}),
		accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerview_accounts",
			Help: "Accounts in the current snapshot, orphans included",
		}),
		orphans: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerview_orphan_accounts",
			Help: "Accounts in the current snapshot whose parent was missing",
		}),
	}
}
