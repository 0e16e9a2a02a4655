// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandcenter_commands_dispatched_total",
			Help: "Total number of quick/voice commands dispatched",
		},
		[]string{"command"},
	)

	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandcenter_webhook_requests_total",
			Help: "Total number of webhook calls by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	SnapshotCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandcenter_snapshot_cycles_total",
			Help: "Total number of snapshot worker cycles by outcome",
		},
		[]string{"status"},
	)

	LiveDataLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandcenter_livedata_loads_total",
			Help: "Total number of live data loads by source (cache, file, default)",
		},
		[]string{"source"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "commandcenter_http_request_duration_seconds",
			Help: "Duration of API request handling in seconds",
		},
		[]string{"path", "method"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commandcenter_notifications_sent_total",
			Help: "Total number of alert notifications sent by channel",
		},
		[]string{"channel", "status"},
	)
)
