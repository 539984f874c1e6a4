package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(providerRequestsTotal, providerLatencySeconds)
}

var (
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prayer_bot_provider_requests_total",
			Help: "AlAdhan requests by endpoint and outcome (ok/network/status/provider/malformed).",
		},
		[]string{"endpoint", "outcome"},
	)

	providerLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prayer_bot_provider_request_duration_seconds",
			Help:    "AlAdhan request latency distribution in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// ObserveProviderRequest records one provider call.
func ObserveProviderRequest(endpoint, outcome string, d time.Duration) {
	providerRequestsTotal.WithLabelValues(norm(endpoint), norm(outcome)).Inc()
	providerLatencySeconds.WithLabelValues(norm(endpoint)).Observe(d.Seconds())
}
