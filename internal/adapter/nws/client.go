package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// Client implements domain.WeatherSource against the NWS public API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWS API client. The timeout applies per request; there
// are no retries.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   cfg.NWSBaseURL,
		userAgent: cfg.NWSUserAgent,
		httpClient: &http.Client{
			Timeout: cfg.NWSTimeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ActiveAlerts fetches the active alerts for a state or area code. The code is
// forwarded as-is; the API itself rejects unknown areas.
func (c *Client) ActiveAlerts(ctx context.Context, area string) ([]domain.AlertFeature, error) {
	u := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, url.PathEscape(area))

	var resp alertsResponse
	if err := c.get(ctx, u, "alerts", &resp); err != nil {
		return nil, err
	}

	features := make([]domain.AlertFeature, len(resp.Features))
	for i, f := range resp.Features {
		features[i] = f.Properties
	}
	return features, nil
}

// GridPoint resolves a coordinate to its forecast grid.
func (c *Client) GridPoint(ctx context.Context, lat, lon float64) (domain.GridPoint, error) {
	u := fmt.Sprintf("%s/points/%s,%s", c.baseURL, formatCoord(lat), formatCoord(lon))

	var resp pointsResponse
	if err := c.get(ctx, u, "points", &resp); err != nil {
		return domain.GridPoint{}, err
	}
	return resp.Properties, nil
}

// ForecastPeriods fetches the periods of a gridpoint forecast by URL. The URL
// comes from a prior GridPoint lookup.
func (c *Client) ForecastPeriods(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error) {
	var resp forecastResponse
	if err := c.get(ctx, forecastURL, "forecast", &resp); err != nil {
		return nil, err
	}
	return resp.Properties.Periods, nil
}

// get performs a single GET against the API and decodes the JSON body into v.
// Any transport error, non-2xx status, or decode failure is returned as an
// error; callers treat all of them uniformly as an absent result.
func (c *Client) get(ctx context.Context, fullURL, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.metrics.NWSRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.NWSRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	c.metrics.NWSRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.NWSRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.NWSRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	c.metrics.NWSRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// formatCoord renders a coordinate without trailing zeros, matching the
// canonical form the points endpoint redirects to.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NWS API response envelopes. The interesting fields live under "properties";
// the GeoJSON geometry is ignored.

type alertsResponse struct {
	Features []struct {
		Properties domain.AlertFeature `json:"properties"`
	} `json:"features"`
}

type pointsResponse struct {
	Properties domain.GridPoint `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []domain.ForecastPeriod `json:"periods"`
	} `json:"properties"`
}
