package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments exported by the masking service.
type Metrics struct {
	Requests     *prometheus.CounterVec
	Passthroughs prometheus.Counter
	Duration     prometheus.Histogram
}

func New(namespace string) *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mask_requests_total",
			Help:      "Mask requests by category and level.",
		}, []string{"category", "level"}),
		Passthroughs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mask_passthroughs_total",
			Help:      "Requests returned unmasked (empty value or unrecognized category).",
		}),
		Duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mask_duration_seconds",
			Help:      "Time spent masking a single value.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
	}
}

// ObserveRequest records one mask call. Unrecognized categories are
// reported under a fixed label to keep cardinality bounded.
func (m *Metrics) ObserveRequest(category, level string, passthrough bool, d time.Duration) {
	m.Requests.WithLabelValues(category, level).Inc()
	if passthrough {
		m.Passthroughs.Inc()
	}
	m.Duration.Observe(d.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
