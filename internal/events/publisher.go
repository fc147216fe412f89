package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// EventType 이벤트 종류
type EventType string

const (
	EventTypeOrderPlaced       EventType = "order.placed"
	EventTypeOrderCancelled    EventType = "order.cancelled"
	EventTypeMetalRatesUpdated EventType = "metal_rates.updated"
)

// Event 토픽에 기록되는 공통 봉투
type Event struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	Key           string          `json:"key"`
	UserID        uint            `json:"user_id,omitempty"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// Publisher 스토어프런트 이벤트 발행
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	PublishOrderCancelled(ctx context.Context, order *model.Order) error
	PublishRatesUpdated(ctx context.Context, snap pricing.MetalRateSnapshot) error
	Close() error
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NoopPublisher{}
	_ Publisher = (*MockPublisher)(nil)
)

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

// NewKafkaPublisher 브로커 목록과 토픽으로 kafka.Writer 생성
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return NewKafkaPublisherWithWriter(writer, topic)
}

func NewKafkaPublisherWithWriter(writer MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

type orderPayload struct {
	OrderID        string            `json:"order_id"`
	TrackingNumber string            `json:"tracking_number"`
	Status         model.OrderStatus `json:"status"`
	PaymentMethod  string            `json:"payment_method"`
	PaymentStatus  string            `json:"payment_status"`
	ItemCount      int               `json:"item_count"`
	Subtotal       int64             `json:"subtotal"`
	TotalTax       float64           `json:"total_tax"`
	GrandTotal     float64           `json:"grand_total"`
	IsInterState   bool              `json:"is_inter_state"`
	ShippingState  string            `json:"shipping_state"`
}

func newOrderPayload(order *model.Order) orderPayload {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return orderPayload{
		OrderID:        order.ID,
		TrackingNumber: order.TrackingNumber,
		Status:         order.Status,
		PaymentMethod:  string(order.PaymentMethod),
		PaymentStatus:  string(order.PaymentStatus),
		ItemCount:      count,
		Subtotal:       order.Subtotal,
		TotalTax:       order.TotalTax,
		GrandTotal:     order.GrandTotal,
		IsInterState:   order.IsInterState,
		ShippingState:  order.Shipping.State,
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	event, err := NewEvent(ctx, EventTypeOrderPlaced, order.ID, order.UserID, newOrderPayload(order))
	if err != nil {
		return err
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) PublishOrderCancelled(ctx context.Context, order *model.Order) error {
	event, err := NewEvent(ctx, EventTypeOrderCancelled, order.ID, order.UserID, newOrderPayload(order))
	if err != nil {
		return err
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) PublishRatesUpdated(ctx context.Context, snap pricing.MetalRateSnapshot) error {
	event, err := NewEvent(ctx, EventTypeMetalRatesUpdated, "metal_rates", 0, snap)
	if err != nil {
		return err
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event *Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("Failed to publish event", err, map[string]interface{}{
			"event_id":   event.ID,
			"event_type": event.Type,
			"key":        event.Key,
			"topic":      p.topic,
		})
		return err
	}

	logger.Debug("Event published", map[string]interface{}{
		"event_id":   event.ID,
		"event_type": event.Type,
		"key":        event.Key,
	})
	return nil
}

func (p *KafkaPublisher) Close() error {
	logger.Info("Closing Kafka publisher", map[string]interface{}{
		"topic": p.topic,
	})
	return p.writer.Close()
}

// NewEvent 페이로드를 인코딩하고 요청 ID를 상관 ID로 붙인다
func NewEvent(ctx context.Context, eventType EventType, key string, userID uint, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Key:           key,
		UserID:        userID,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.RequestIDFromContext(ctx),
	}, nil
}

// NoopPublisher Kafka 미설정 시 사용
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, *model.Order) error             { return nil }
func (NoopPublisher) PublishOrderCancelled(context.Context, *model.Order) error          { return nil }
func (NoopPublisher) PublishRatesUpdated(context.Context, pricing.MetalRateSnapshot) error { return nil }
func (NoopPublisher) Close() error                                                       { return nil }

// MockPublisher records events in memory for tests.
type MockPublisher struct {
	mu     sync.Mutex
	Events []*Event
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*Event, 0)}
}

func (m *MockPublisher) record(ctx context.Context, eventType EventType, key string, userID uint, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	event, err := NewEvent(ctx, eventType, key, userID, payload)
	if err != nil {
		return err
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	return m.record(ctx, EventTypeOrderPlaced, order.ID, order.UserID, newOrderPayload(order))
}

func (m *MockPublisher) PublishOrderCancelled(ctx context.Context, order *model.Order) error {
	return m.record(ctx, EventTypeOrderCancelled, order.ID, order.UserID, newOrderPayload(order))
}

func (m *MockPublisher) PublishRatesUpdated(ctx context.Context, snap pricing.MetalRateSnapshot) error {
	return m.record(ctx, EventTypeMetalRatesUpdated, "metal_rates", 0, snap)
}

func (m *MockPublisher) Close() error { return nil }

// Types 기록된 이벤트 종류 (발행 순)
func (m *MockPublisher) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]EventType, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Type)
	}
	return types
}

// RatesListener 시세 발행마다 metal_rates.updated 이벤트를 보낸다
func RatesListener(pub Publisher, timeout time.Duration) func(pricing.MetalRateSnapshot) {
	return func(snap pricing.MetalRateSnapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := pub.PublishRatesUpdated(ctx, snap); err != nil {
			logger.Warn("Metal rates event not published", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
