package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetrack_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timetrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvoicesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timetrack_invoices_created_total",
			Help: "Total number of invoices composed.",
		},
	)

	DashboardCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetrack_dashboard_cache_requests_total",
			Help: "Dashboard cache lookups by outcome (hit or miss).",
		},
		[]string{"outcome"},
	)
)
