package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather tool server.
type Metrics struct {
	// Upstream NWS API metrics.
	NWSRequests        *prometheus.CounterVec   // labels: endpoint={alerts,points,forecast}, outcome={success,error}
	NWSRequestDuration *prometheus.HistogramVec // labels: endpoint={alerts,points,forecast}

	// Response cache metrics.
	CacheLookups *prometheus.CounterVec // labels: endpoint={alerts,points,forecast}, result={hit,miss}

	// Tool invocation metrics.
	ToolCalls        *prometheus.CounterVec   // labels: tool={get_alerts,get_forecast}, outcome={success,fetch_failure}
	ToolCallDuration *prometheus.HistogramVec // labels: tool={get_alerts,get_forecast}

	AlertsPublished prometheus.Counter
	ServerRunning   prometheus.Gauge
}

// NewMetrics creates and registers all server metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		NWSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "nws_requests_total",
			Help:      "NWS API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		NWSRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "nws_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by endpoint and result.",
		}, []string{"endpoint", "result"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_calls_total",
			Help:      "MCP tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		ToolCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "tool_call_duration_seconds",
			Help:      "Duration of a complete tool invocation, fetches included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"tool"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "alerts_published_total",
			Help:      "Total alert events published to the Kafka topic.",
		}),
		ServerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_mcp",
			Name:      "server_running",
			Help:      "1 when the MCP stdio server is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.NWSRequests,
		m.NWSRequestDuration,
		m.CacheLookups,
		m.ToolCalls,
		m.ToolCallDuration,
		m.AlertsPublished,
		m.ServerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		NWSRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "nws_requests_total"}, []string{"endpoint", "outcome"}),
		NWSRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "nws_request_duration_seconds"}, []string{"endpoint"}),
		CacheLookups:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "cache_lookups_total"}, []string{"endpoint", "result"}),
		ToolCalls:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "tool_calls_total"}, []string{"tool", "outcome"}),
		ToolCallDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "tool_call_duration_seconds"}, []string{"tool"}),
		AlertsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "alerts_published_total"}),
		ServerRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_mcp", Name: "server_running"}),
	}
}
