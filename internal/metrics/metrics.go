package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dccost_requests_total",
			Help: "Total number of HTTP requests per path",
		},
		[]string{"path"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dccost_request_duration_seconds",
			Help:    "HTTP request duration in seconds per path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	EstimateErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dccost_estimate_errors_total",
			Help: "Total number of failed cost estimates per error kind",
		},
		[]string{"kind"},
	)
)
