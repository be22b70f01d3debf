package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atelier_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StoreOperationsTotal counts collection service calls by outcome:
	// ok, not_found, rejected, unavailable.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_store_operations_total",
			Help: "Collection operations by entity, operation and outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)

	ProbeChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_probe_checks_total",
			Help: "Connectivity probe results",
		},
		[]string{"status"},
	)
)
