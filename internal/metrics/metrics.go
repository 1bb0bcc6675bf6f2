package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DispatchTransactionsTotal counts dispatch transactions per outcome
	// (dispatched / flags_updated / no_op).
	DispatchTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_dispatch_transactions_total",
			Help: "Dispatch transactions by outcome",
		},
		[]string{"outcome"},
	)

	// CatalogueWritesTotal counts conditional writes to the external store
	// per result (ok / conflict / error).
	CatalogueWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_catalogue_writes_total",
			Help: "Catalogue conditional writes by result",
		},
		[]string{"result"},
	)
)
