package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics are registered on a per-handler registry so tests can build
// several handlers in one process.
type metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	resolve     prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dimensional",
			Name:      "conversions_total",
			Help:      "Conversions served, by outcome.",
		}, []string{"outcome"}),
		resolve: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dimensional",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving a conversion factor.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	m.registry.MustRegister(
		m.conversions,
		m.resolve,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// outcome labels a conversion result for the counter.
func outcome(err error) string {
	switch status, _ := statusFor(err); status {
	case 200:
		return "ok"
	case 400:
		return "invalid"
	case 404:
		return "unknown"
	case 422:
		return "no_rule"
	default:
		return "error"
	}
}
