package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects refresh-loop counters exposed on /metrics.
type Metrics struct {
	Cycles          *prometheus.CounterVec
	Recoveries      prometheus.Counter
	LastSuccessTime prometheus.Gauge
	CycleDuration   prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on a caller-supplied registry; tests use this to keep
// registrations isolated.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "overlay_cycles_total",
			Help: "Refresh cycles by result.",
		}, []string{"result"}),
		Recoveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "overlay_credential_recoveries_total",
			Help: "Credential recovery attempts.",
		}),
		LastSuccessTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_last_success_timestamp_seconds",
			Help: "Unix time of the last successful snapshot write.",
		}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "overlay_cycle_duration_seconds",
			Help:    "Duration of refresh cycles.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
