package domain

import (
	"context"
	"time"
)

// AlertFeature holds the properties of one active alert, flattened from the
// GeoJSON feature the NWS alerts endpoint returns. All fields may be empty.
type AlertFeature struct {
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
}

// ForecastPeriod is one entry of a gridpoint forecast, typically covering a
// day or a night.
type ForecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	DetailedForecast string `json:"detailedForecast"`
}

// GridPoint is the result of resolving a coordinate against the points
// endpoint. Only the forecast URL is needed; it is followed immediately and
// never persisted.
type GridPoint struct {
	ForecastURL string `json:"forecast"`
}

// WeatherSource fetches weather data from the upstream API. Implementations
// return an error for any fetch failure (transport, timeout, non-2xx status,
// decode); callers treat all failures uniformly.
type WeatherSource interface {
	// ActiveAlerts returns the active alerts for a state or area code.
	ActiveAlerts(ctx context.Context, area string) ([]AlertFeature, error)

	// GridPoint resolves a coordinate to its forecast grid.
	GridPoint(ctx context.Context, lat, lon float64) (GridPoint, error)

	// ForecastPeriods fetches the periods of a gridpoint forecast by URL.
	ForecastPeriods(ctx context.Context, forecastURL string) ([]ForecastPeriod, error)
}

// AlertEvent is the record published to the alerts sink topic after a
// successful alerts fetch.
type AlertEvent struct {
	Area      string    `json:"area"`
	Event     string    `json:"event"`
	Severity  string    `json:"severity"`
	AreaDesc  string    `json:"area_desc"`
	FetchedAt time.Time `json:"fetched_at"`
}

// AlertPublisher delivers alert events to downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, events []AlertEvent) error
}

// NewAlertEvents converts fetched alert features into publishable events,
// stamped with the current time from the package clock.
func NewAlertEvents(area string, features []AlertFeature) []AlertEvent {
	now := clock.Now().UTC()
	events := make([]AlertEvent, len(features))
	for i, f := range features {
		events[i] = AlertEvent{
			Area:      area,
			Event:     f.Event,
			Severity:  f.Severity,
			AreaDesc:  f.AreaDesc,
			FetchedAt: now,
		}
	}
	return events
}
