package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bkf_page_requests_total",
			Help: "Total number of page requests",
		},
		[]string{"page", "code"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bkf_backend_requests_total",
			Help: "Total requests to the scheduling service by event tag",
		},
		[]string{"event", "result"},
	)

	BackendRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bkf_backend_request_seconds",
			Help:    "Duration of scheduling service calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	SubmitFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bkf_submit_failures_total",
			Help: "Best-effort booking submissions that failed after navigation",
		},
	)

	PreconditionRedirects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bkf_precondition_redirects_total",
			Help: "Pages loaded out of sequence and redirected to the schedule",
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bkf_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
