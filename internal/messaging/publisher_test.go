package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-menu/internal/logger"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func newTestPublisher(ch *recordingChannel) *Publisher {
	return &Publisher{
		channel: func() (channel, error) { return ch, nil },
		logger:  logger.Discard(),
	}
}

func TestPublishOrder(t *testing.T) {
	ch := &recordingChannel{}
	p := newTestPublisher(ch)

	msg := map[string]interface{}{"order_number": "ORD_20240101_001", "total_amount": 14.275}
	if err := p.PublishOrder(context.Background(), msg, "kitchen.order.1", 1); err != nil {
		t.Fatalf("PublishOrder returned error: %v", err)
	}

	if ch.exchange != OrdersExchange || ch.key != "kitchen.order.1" {
		t.Errorf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp091.Persistent || ch.msg.Priority != 1 {
		t.Errorf("unexpected publishing options: %+v", ch.msg)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(ch.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["order_number"] != "ORD_20240101_001" {
		t.Errorf("unexpected body: %s", ch.msg.Body)
	}
}

func TestPublishOrder_Error(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	p := newTestPublisher(ch)

	if err := p.PublishOrder(context.Background(), struct{}{}, "kitchen.order.1", 1); err == nil {
		t.Fatal("expected error")
	}
}
