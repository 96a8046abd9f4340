package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fjod/kshop/internal/domain"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventOrderPlaced = "order_placed"

// LogPublisher records the order in the log and nothing else.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, order *domain.Order) error {
	p.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer", order.Customer.Name),
		zap.Int("lines", len(order.Lines)),
		zap.Int("total_items", order.TotalItems),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
		zap.String("currency", order.Currency))
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one order_placed event per order, keyed by order id.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

type orderItem struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type orderPlaced struct {
	OrderID     string          `json:"order_id"`
	Customer    domain.UserInfo `json:"customer"`
	Items       []orderItem     `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	PlacedAt    time.Time       `json:"placed_at"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, order *domain.Order) error {
	items := make([]orderItem, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, orderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	payload, err := json.Marshal(orderPlaced{
		OrderID:     order.ID.String(),
		Customer:    order.Customer,
		Items:       items,
		TotalItems:  order.TotalItems,
		TotalAmount: order.TotalPrice,
		Currency:    order.Currency,
		PlacedAt:    order.PlacedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal order payload")
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderPlaced)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "failed to publish order %s", order.ID)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
