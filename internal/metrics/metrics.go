// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route template, method and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goai_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goai_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route", "method"},
	)

	// RecordsCreated counts records created per resource, e.g. "Goal" or "Task".
	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goai_records_created_total",
			Help: "Total number of records created",
		},
		[]string{"resource"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goai_login_attempts_total",
			Help: "Login attempts by outcome: success, failure, rate_limited",
		},
		[]string{"outcome"},
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goai_reminders_sent_total",
			Help: "Reminder digests by frequency and outcome",
		},
		[]string{"frequency", "outcome"},
	)
)
