package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fjod/kshop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:       uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"),
		Customer: validInfo(),
		Lines: []domain.CartLine{
			{ProductID: 1, Title: "Backpack", UnitPrice: decimal.RequireFromString("109.95"), Quantity: 2},
		},
		TotalItems: 2,
		TotalPrice: decimal.RequireFromString("219.9"),
		Currency:   domain.Currency,
		PlacedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &MockWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Publish(context.Background(), sampleOrder()))

	require.Len(t, w.Messages, 1)
	msg := w.Messages[0]
	assert.Equal(t, "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventOrderPlaced, string(msg.Headers[0].Value))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f", payload["order_id"])
	assert.Equal(t, "219.9", payload["total_amount"])
	assert.Equal(t, "USD", payload["currency"])
	assert.EqualValues(t, 2, payload["total_items"])
	items := payload["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "109.95", items[0].(map[string]interface{})["unit_price"])
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &MockWriter{Err: errors.New("leader not available")}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), sampleOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &MockWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Close())
	assert.True(t, w.Closed)
}

func TestLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), sampleOrder()))

	entries := logs.FilterMessage("order placed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "219.90", fields["total_price"])
	assert.Equal(t, int64(2), fields["total_items"])
}
