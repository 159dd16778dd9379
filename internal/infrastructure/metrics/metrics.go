// Package metrics provides Prometheus metrics for the voice-gateway service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicegw_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voicegw_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SessionsCreated counts realtime sessions registered in the gateway.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicegw_sessions_created_total",
			Help: "Total number of realtime sessions created",
		},
	)

	// TranscriptionsForwarded counts transcriptions relayed to n8n.
	TranscriptionsForwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicegw_transcriptions_forwarded_total",
			Help: "Total number of transcriptions forwarded to webhooks",
		},
	)

	// WebhookDeliveriesTotal counts webhook deliveries by outcome.
	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicegw_webhook_deliveries_total",
			Help: "Total number of webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	// BrokerRequestsTotal counts realtime session broker calls by outcome.
	BrokerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicegw_broker_requests_total",
			Help: "Total number of realtime session broker requests by outcome",
		},
		[]string{"outcome"},
	)

	// BrokerRequestDuration tracks realtime session broker latency.
	BrokerRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voicegw_broker_request_duration_seconds",
			Help:    "Duration of realtime session broker requests",
			Buckets: prometheus.DefBuckets,
		},
	)
)
