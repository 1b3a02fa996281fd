package models

import (
	"fmt"
	"time"
)

// OrderMessage represents a message sent to the kitchen when an order is dispatched
type OrderMessage struct {
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	Items        []Record  `json:"items"`
	TotalAmount  float64   `json:"total_amount"`
	Priority     int       `json:"priority"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// NewOrderMessage snapshots an order for publishing
func NewOrderMessage(order *Order) *OrderMessage {
	total := order.CalculateTotalPrice()
	return &OrderMessage{
		OrderNumber:  order.Number,
		CustomerName: order.Customer,
		Items:        order.Records(),
		TotalAmount:  total,
		Priority:     CalculatePriority(total),
		DispatchedAt: time.Now().UTC(),
	}
}

// RoutingKey routes the message to the kitchen queue, e.g. kitchen.order.5
func (m *OrderMessage) RoutingKey() string {
	return GenerateRoutingKey("order", m.Priority)
}

// GenerateRoutingKey generates a routing key for order messages
func GenerateRoutingKey(orderType string, priority int) string {
	return fmt.Sprintf("kitchen.%s.%d", orderType, priority)
}
