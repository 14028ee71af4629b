// Package mcpserver exposes the weather tools over the Model Context
// Protocol's stdio transport.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Fetch failures surface to the client as plain text rather than protocol
// errors, so the calling model always receives a readable answer.
const (
	alertsFailureMessage   = "Unable to fetch alerts or no alerts found."
	noAlertsMessage        = "No active alerts for this state."
	forecastFailureMessage = "Unable to fetch forecast data for this location."
)

// GetAlertsInput is the argument schema for the get_alerts tool.
type GetAlertsInput struct {
	State string `json:"state" jsonschema:"Two-letter US state code (e.g. CA, NY)"`
}

// GetForecastInput is the argument schema for the get_forecast tool.
type GetForecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location"`
}

// Server wires the weather source and optional alert publisher into an MCP
// server serving the get_alerts and get_forecast tools.
type Server struct {
	source    domain.WeatherSource
	publisher domain.AlertPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	mcp       *mcp.Server
	ready     atomic.Bool
}

// New builds the MCP server and registers both tools. publisher may be nil
// when alert publishing is disabled.
func New(source domain.WeatherSource, publisher domain.AlertPublisher, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "weather-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Get active weather alerts for a US state",
	}, s.handleGetAlerts)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get the weather forecast for a location",
	}, s.handleGetForecast)

	return s
}

// Run serves MCP traffic over stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.metrics.ServerRunning.Set(1)
	defer s.metrics.ServerRunning.Set(0)

	s.ready.Store(true)
	defer s.ready.Store(false)

	s.logger.Info("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// CheckReadiness reports whether the stdio transport is accepting tool calls.
func (s *Server) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("mcp transport not started")
	}
	return nil
}

func (s *Server) handleGetAlerts(ctx context.Context, _ *mcp.CallToolRequest, in GetAlertsInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	defer func() {
		s.metrics.ToolCallDuration.WithLabelValues("get_alerts").Observe(time.Since(start).Seconds())
	}()

	features, err := s.source.ActiveAlerts(ctx, in.State)
	if err != nil {
		s.logger.Warn("alerts fetch failed", "state", in.State, "error", err)
		s.metrics.ToolCalls.WithLabelValues("get_alerts", "fetch_failure").Inc()
		return textResult(alertsFailureMessage), nil, nil
	}

	s.publishAlerts(ctx, in.State, features)

	if len(features) == 0 {
		s.metrics.ToolCalls.WithLabelValues("get_alerts", "success").Inc()
		return textResult(noAlertsMessage), nil, nil
	}

	s.metrics.ToolCalls.WithLabelValues("get_alerts", "success").Inc()
	return textResult(domain.FormatAlerts(features)), nil, nil
}

func (s *Server) handleGetForecast(ctx context.Context, _ *mcp.CallToolRequest, in GetForecastInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	defer func() {
		s.metrics.ToolCallDuration.WithLabelValues("get_forecast").Observe(time.Since(start).Seconds())
	}()

	point, err := s.source.GridPoint(ctx, in.Latitude, in.Longitude)
	if err != nil || point.ForecastURL == "" {
		s.logger.Warn("grid point lookup failed",
			"latitude", in.Latitude, "longitude", in.Longitude, "error", err)
		s.metrics.ToolCalls.WithLabelValues("get_forecast", "fetch_failure").Inc()
		return textResult(forecastFailureMessage), nil, nil
	}

	periods, err := s.source.ForecastPeriods(ctx, point.ForecastURL)
	if err != nil {
		s.logger.Warn("forecast fetch failed", "url", point.ForecastURL, "error", err)
		s.metrics.ToolCalls.WithLabelValues("get_forecast", "fetch_failure").Inc()
		return textResult(forecastFailureMessage), nil, nil
	}

	s.metrics.ToolCalls.WithLabelValues("get_forecast", "success").Inc()
	return textResult(domain.FormatForecast(periods)), nil, nil
}

// publishAlerts forwards fetched alerts to the configured sink. Publishing is
// best effort: a failure is logged and does not affect the tool response.
func (s *Server) publishAlerts(ctx context.Context, area string, features []domain.AlertFeature) {
	if s.publisher == nil || len(features) == 0 {
		return
	}
	events := domain.NewAlertEvents(area, features)
	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.Warn("alert publish failed", "area", area, "count", len(events), "error", err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
