package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/weather-mcp-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/mcpserver"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var source domain.WeatherSource = nws.NewClient(cfg, metrics, logger)
	if cfg.CacheSize > 0 {
		source = nws.NewCachedSource(source, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)
		logger.Info("response cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	} else {
		logger.Info("response cache disabled")
	}

	// Alert publishing is feature-flagged via KAFKA_ENABLED.
	var publisher domain.AlertPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, metrics, logger)
		publisher = writer
		logger.Info("alert publishing enabled", "topic", cfg.KafkaAlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("alert publishing disabled")
	}

	srv := mcpserver.New(source, publisher, metrics, logger)
	admin := httpadapter.NewServer(cfg.HTTPAddr, srv, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start admin HTTP server.
	go func() {
		if err := admin.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin server error", "error", err)
		}
	}()

	// Serve MCP traffic on stdio until the client disconnects or a signal
	// arrives.
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := admin.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
