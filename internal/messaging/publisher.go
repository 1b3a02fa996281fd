package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-menu/internal/logger"
)

// channel is the publishing side of an AMQP channel
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	conn    *Connection
	channel func() (channel, error)
	logger  *logger.Logger
}

// NewPublisher creates a publisher that reconnects when the connection dropped
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn: conn,
		channel: func() (channel, error) {
			if conn.IsClosed() {
				if err := conn.Reconnect(); err != nil {
					return nil, fmt.Errorf("failed to reconnect: %w", err)
				}
			}
			return conn.Channel(), nil
		},
		logger: log,
	}
}

// PublishOrder publishes an order message to the orders topic exchange
func (p *Publisher) PublishOrder(ctx context.Context, orderMsg interface{}, routingKey string, priority uint8) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(orderMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     priority,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = ch.PublishWithContext(
		ctx,
		OrdersExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", OrdersExchange),
			"", err, map[string]interface{}{
				"exchange":    OrdersExchange,
				"routing_key": routingKey,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message to exchange %s", OrdersExchange),
		"", map[string]interface{}{
			"exchange":     OrdersExchange,
			"routing_key":  routingKey,
			"message_size": len(body),
		})

	return nil
}

// Close closes the underlying connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
