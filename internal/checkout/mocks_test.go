package checkout

import (
	"context"
	"sync"

	"github.com/fjod/kshop/internal/domain"
	"github.com/segmentio/kafka-go"
)

// MockPublisher records published orders.
type MockPublisher struct {
	mu     sync.Mutex
	Err    error
	Orders []domain.Order
}

func (m *MockPublisher) Publish(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orders = append(m.Orders, *order)
	return m.Err
}

func (m *MockPublisher) Published() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order(nil), m.Orders...)
}

// MockWriter stands in for the kafka writer.
type MockWriter struct {
	mu       sync.Mutex
	Err      error
	Messages []kafka.Message
	Closed   bool
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
