package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testOrder() *model.Order {
	return &model.Order{
		ID:             "JRB1700000000000",
		UserID:         3,
		Status:         model.OrderStatusConfirmed,
		PaymentMethod:  model.PaymentUPI,
		PaymentStatus:  model.PaymentStatusPaid,
		TrackingNumber: "TRK1700000000000",
		Subtotal:       120000,
		TotalTax:       3600,
		GrandTotal:     123600,
		Shipping:       model.ShippingAddress{State: "Karnataka"},
		IsInterState:   true,
		Items: []model.OrderItem{
			{ProductID: "1", Quantity: 2},
			{ProductID: "4", Quantity: 1},
		},
	}
}

func TestKafkaPublisher_OrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	pub := NewKafkaPublisherWithWriter(w, "jrb.test")
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	require.NoError(t, pub.PublishOrderPlaced(ctx, testOrder()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "JRB1700000000000", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, string(EventTypeOrderPlaced), string(msg.Headers[0].Value))

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, EventTypeOrderPlaced, event.Type)
	assert.Equal(t, "req-42", event.CorrelationID)
	assert.Equal(t, uint(3), event.UserID)
	assert.Equal(t, string(msg.Headers[1].Value), event.ID)

	var payload orderPayload
	require.NoError(t, json.Unmarshal(event.Data, &payload))
	assert.Equal(t, 3, payload.ItemCount)
	assert.Equal(t, "TRK1700000000000", payload.TrackingNumber)
	assert.Equal(t, "Karnataka", payload.ShippingState)
	assert.True(t, payload.IsInterState)
}

func TestKafkaPublisher_RatesUpdated(t *testing.T) {
	w := &fakeWriter{}
	pub := NewKafkaPublisherWithWriter(w, "jrb.test")
	snap := pricing.DefaultFallbackRates.Snapshot(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, pub.PublishRatesUpdated(context.Background(), snap))
	require.Len(t, w.messages, 1)

	var event Event
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &event))
	assert.Equal(t, EventTypeMetalRatesUpdated, event.Type)
	assert.Empty(t, event.CorrelationID)

	var decoded pricing.MetalRateSnapshot
	require.NoError(t, json.Unmarshal(event.Data, &decoded))
	rate, ok := decoded.Rate(pricing.MetalGold, "22k")
	require.True(t, ok)
	assert.Equal(t, 9405.0, rate)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	pub := NewKafkaPublisherWithWriter(w, "jrb.test")

	err := pub.PublishOrderCancelled(context.Background(), testOrder())
	assert.EqualError(t, err, "broker unavailable")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaPublisherWithWriter(w, "jrb.test").Close())
	assert.True(t, w.closed)
}

func TestRatesListener(t *testing.T) {
	mock := NewMockPublisher()
	listener := RatesListener(mock, time.Second)

	listener(pricing.DefaultFallbackRates.Snapshot(time.Now()))
	listener(pricing.DefaultFallbackRates.Snapshot(time.Now()))

	assert.Equal(t, []EventType{EventTypeMetalRatesUpdated, EventTypeMetalRatesUpdated}, mock.Types())
}

func TestRatesListener_SwallowsErrors(t *testing.T) {
	mock := NewMockPublisher()
	mock.Err = errors.New("down")

	assert.NotPanics(t, func() {
		RatesListener(mock, time.Second)(pricing.DefaultFallbackRates.Snapshot(time.Now()))
	})
	assert.Empty(t, mock.Types())
}
