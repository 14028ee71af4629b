package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	fetched := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	event := domain.AlertEvent{
		Area:      "CA",
		Event:     "Flood Warning",
		Severity:  "Severe",
		AreaDesc:  "Sacramento Valley",
		FetchedAt: fetched,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("CA"), msg.Key)

	var decoded domain.AlertEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("Flood Warning"), msg.Headers[0].Value)
	assert.Equal(t, "fetched_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-03-14T09:26:53Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_EmptyFields(t *testing.T) {
	msg, err := serializeToMessage(domain.AlertEvent{Area: "TX"})
	require.NoError(t, err)
	assert.Equal(t, []byte("TX"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "TX", decoded["area"])
}
