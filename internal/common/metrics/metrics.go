// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of requests handled by route and status",
		},
		[]string{"route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_request_duration_seconds",
			Help: "Duration of request handling in seconds",
		},
		[]string{"route"},
	)

	SubmissionsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_intake_submissions_total",
			Help: "Total number of intake submissions durably written",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_intake_notification_failures_total",
			Help: "Best-effort notification failures by channel",
		},
		[]string{"channel"},
	)

	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_mcp_upstream_calls_total",
			Help: "Proxied JSON-RPC calls by outcome",
		},
		[]string{"outcome"},
	)
)
