package nws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserAgent     = "weather-mcp-test/1.0 (test@example.test)"
	contentTypeJSON   = "application/geo+json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  testUserAgent,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_ActiveAlerts_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active/area/CA", r.URL.Path)
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/geo+json", r.Header.Get("Accept"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, err := w.Write([]byte(`{
			"features": [
				{"properties": {"event": "Test Alert", "areaDesc": "Test Area", "severity": "Severe", "description": "Details.", "instruction": "Stay inside."}},
				{"properties": {"event": "Second Alert"}}
			]
		}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	features, err := c.ActiveAlerts(context.Background(), "CA")
	require.NoError(t, err)

	require.Len(t, features, 2)
	assert.Equal(t, "Test Alert", features[0].Event)
	assert.Equal(t, "Test Area", features[0].AreaDesc)
	assert.Equal(t, "Severe", features[0].Severity)
	assert.Equal(t, "Details.", features[0].Description)
	assert.Equal(t, "Stay inside.", features[0].Instruction)
	assert.Equal(t, "Second Alert", features[1].Event)
	assert.Empty(t, features[1].Severity)
}

func TestClient_ActiveAlerts_EmptyFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	features, err := c.ActiveAlerts(context.Background(), "OR")
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestClient_ActiveAlerts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ActiveAlerts(context.Background(), "XX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_ActiveAlerts_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"features": [{{not-json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ActiveAlerts(context.Background(), "CA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_ActiveAlerts_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.ActiveAlerts(context.Background(), "CA")
	require.Error(t, err)
}

func TestClient_GridPoint_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/points/37.77,-122.42", r.URL.Path)
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"properties": {"forecast": "https://api.weather.gov/gridpoints/MTR/85,105/forecast"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	point, err := c.GridPoint(context.Background(), 37.77, -122.42)
	require.NoError(t, err)
	assert.Equal(t, "https://api.weather.gov/gridpoints/MTR/85,105/forecast", point.ForecastURL)
}

func TestClient_ForecastPeriods_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gridpoints/MTR/85,105/forecast", r.URL.Path)
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{
			"properties": {
				"periods": [
					{"name": "Tonight", "temperature": 60, "temperatureUnit": "F", "windSpeed": "5 mph", "windDirection": "NW", "detailedForecast": "Clear."}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	periods, err := c.ForecastPeriods(context.Background(), srv.URL+"/gridpoints/MTR/85,105/forecast")
	require.NoError(t, err)

	require.Len(t, periods, 1)
	assert.Equal(t, "Tonight", periods[0].Name)
	assert.Equal(t, 60, periods[0].Temperature)
	assert.Equal(t, "F", periods[0].TemperatureUnit)
	assert.Equal(t, "5 mph", periods[0].WindSpeed)
	assert.Equal(t, "NW", periods[0].WindDirection)
	assert.Equal(t, "Clear.", periods[0].DetailedForecast)
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "37.77", formatCoord(37.77))
	assert.Equal(t, "-122.42", formatCoord(-122.42))
	assert.Equal(t, "40", formatCoord(40))
}
