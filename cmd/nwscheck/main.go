// Command nwscheck exercises the NWS client and formatters against the live
// API. It fetches active alerts for a state and the forecast for a
// coordinate, then prints the rendered text blocks.
//
// Usage:
//
//	go run ./cmd/nwscheck -state CA -lat 37.77 -lon -122.42
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

func main() {
	state := flag.String("state", "CA", "two-letter US state code for alerts")
	lat := flag.Float64("lat", 37.77, "latitude for the forecast")
	lon := flag.Float64("lon", -122.42, "longitude for the forecast")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	client := nws.NewClient(cfg, metrics, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("=== Active alerts for %s ===\n", *state)
	alerts, err := client.ActiveAlerts(ctx, *state)
	switch {
	case err != nil:
		fmt.Printf("alerts fetch failed: %v\n", err)
	case len(alerts) == 0:
		fmt.Println("no active alerts")
	default:
		fmt.Println(domain.FormatAlerts(alerts))
	}

	fmt.Printf("\n=== Forecast for %.2f,%.2f ===\n", *lat, *lon)
	point, err := client.GridPoint(ctx, *lat, *lon)
	if err != nil {
		fmt.Printf("grid point lookup failed: %v\n", err)
		os.Exit(1)
	}
	periods, err := client.ForecastPeriods(ctx, point.ForecastURL)
	if err != nil {
		fmt.Printf("forecast fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(domain.FormatForecast(periods))
}
