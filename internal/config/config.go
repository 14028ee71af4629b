package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultUserAgent identifies this service to the NWS API, which rejects
// requests without a User-Agent header.
const defaultUserAgent = "weather-mcp/1.0 (github.com/couchcryptid/weather-mcp-service)"

// Config holds all service settings, populated from environment variables.
type Config struct {
	NWSBaseURL   string
	NWSUserAgent string
	NWSTimeout   time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream response cache configuration. CacheSize of 0 disables caching.
	CacheSize int
	CacheTTL  time.Duration

	// Kafka alert publishing configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaAlertsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	nwsTimeout, err := parseDurationEnv("NWS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parseDurationEnv("CACHE_TTL", "60s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		NWSBaseURL:   envOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent: envOrDefault("NWS_USER_AGENT", defaultUserAgent),
		NWSTimeout:   nwsTimeout,

		HTTPAddr:        envOrDefault("HTTP_ADDR", "127.0.0.1:9090"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CacheSize: parseCacheSize(),
		CacheTTL:  cacheTTL,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "active-weather-alerts"),
	}

	if cfg.NWSBaseURL == "" {
		return nil, errors.New("NWS_BASE_URL is required")
	}
	if cfg.NWSUserAgent == "" {
		return nil, errors.New("NWS_USER_AGENT is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaAlertsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ALERTS_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return 256
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
