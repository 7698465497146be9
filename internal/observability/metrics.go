// Package observability exposes Prometheus metrics for the Orchestrator
// client and the MCP front-end.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uipath_mcp_api_request_duration_seconds",
			Help:    "Duration of Orchestrator API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uipath_mcp_api_requests_total",
			Help: "Total Orchestrator API requests by method and status",
		},
		[]string{"method", "status"},
	)

	tokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uipath_mcp_token_refreshes_total",
			Help: "Total identity-server token exchanges by outcome",
		},
		[]string{"outcome"},
	)

	toolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uipath_mcp_tool_calls_total",
			Help: "Total MCP tool calls by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)
)

// RecordAPIRequest records one Orchestrator API request.
func RecordAPIRequest(method, status string, durationSeconds float64) {
	apiRequests.WithLabelValues(method, status).Inc()
	apiRequestDuration.WithLabelValues(method, status).Observe(durationSeconds)
}

// RecordTokenRefresh records one token exchange attempt.
func RecordTokenRefresh(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}

// RecordToolCall records one MCP tool invocation.
func RecordToolCall(tool, outcome string) {
	toolCalls.WithLabelValues(tool, outcome).Inc()
}
