package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopic       = "storefront-checkouts"
	EventTypeCompleted = "checkout.completed"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type eventItem struct {
	Code      int64           `json:"code"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CheckoutCompletedEvent is the message published for every successful checkout.
type CheckoutCompletedEvent struct {
	CheckoutID    string          `json:"checkout_id"`
	ReceiptName   string          `json:"receipt_name"`
	Items         []eventItem     `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CompletedAt   time.Time       `json:"completed_at"`
}

// CheckoutPublisher announces completed checkouts on a Kafka topic.
type CheckoutPublisher struct {
	writer messageWriter
}

func NewCheckoutPublisher(topic string, brokers ...string) *CheckoutPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &CheckoutPublisher{writer: w}
}

func NewEvent(r domain.Receipt) CheckoutCompletedEvent {
	items := make([]eventItem, 0, len(r.Entries))
	for _, e := range r.Entries {
		items = append(items, eventItem{
			Code:      e.Code,
			Brand:     e.Brand,
			Model:     e.Model,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			Subtotal:  e.Subtotal(),
		})
	}
	return CheckoutCompletedEvent{
		CheckoutID:    r.CheckoutID,
		ReceiptName:   r.Name(),
		Items:         items,
		TotalQuantity: r.TotalQuantity,
		TotalAmount:   r.TotalPrice,
		CompletedAt:   r.Date,
	}
}

func (p *CheckoutPublisher) Publish(ctx context.Context, r domain.Receipt) error {
	payload, err := json.Marshal(NewEvent(r))
	if err != nil {
		return fmt.Errorf("failed to marshal checkout event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(r.CheckoutID), // checkout_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeCompleted)},
		},
		Time: r.Date,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish checkout %s: %w", r.CheckoutID, err)
	}
	return nil
}

func (p *CheckoutPublisher) Close() error {
	return p.writer.Close()
}
