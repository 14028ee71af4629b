package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces alert events to a Kafka topic.
// It implements domain.AlertPublisher.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alerts topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes and delivers alert events to the sink topic in a single
// WriteMessages call.
func (w *Writer) Publish(ctx context.Context, events []domain.AlertEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.metrics.AlertsPublished.Add(float64(len(events)))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AlertEvent into a Kafka message keyed by area
// so all alerts for one area land on the same partition.
func serializeToMessage(event domain.AlertEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Area),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Event)},
			{Key: "fetched_at", Value: []byte(event.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
