package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/queue"
)

// ErrItemNotFound is returned when an order line names an entry the menu does not have
var ErrItemNotFound = errors.New("menu item not found")

// Menu is the read side of the catalog used to price orders
type Menu interface {
	Lookup(category, itemName string) (models.Record, bool)
}

// Publisher sends dispatched orders to the kitchen
type Publisher interface {
	PublishOrder(ctx context.Context, orderMsg interface{}, routingKey string, priority uint8) error
}

// Service builds orders from the menu and hands them to the kitchen in arrival order
type Service struct {
	menu      Menu
	queue     *queue.OrderQueue
	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time

	mu            sync.Mutex
	orderCounter  int
	lastOrderDate string
}

// NewService creates an order service. publisher may be nil, in which case
// dispatched orders are only returned to the caller.
func NewService(menu Menu, q *queue.OrderQueue, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		menu:      menu,
		queue:     q,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// PlaceOrder prices the requested lines against the menu and enqueues the order
func (s *Service) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest, requestID string) (*models.PlaceOrderResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order := models.NewOrder()
	order.Customer = req.CustomerName

	for _, line := range req.Items {
		record, ok := s.menu.Lookup(line.Category, line.Name)
		if !ok {
			return nil, fmt.Errorf("%q in %q: %w", line.Name, line.Category, ErrItemNotFound)
		}
		entry, err := models.EntryFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("failed to read menu item %q: %w", line.Name, err)
		}
		for range line.Quantity {
			order.AppendItem(entry)
		}
	}

	order.Number = s.generateOrderNumber()
	total := order.CalculateTotalPrice()
	priority := models.CalculatePriority(total)

	s.queue.AddOrder(order)
	ordersPlaced.Inc()

	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_number":  order.Number,
		"customer_name": order.Customer,
		"item_count":    order.Len(),
		"total_amount":  total,
		"priority":      priority,
		"queue_length":  s.queue.Len(),
	})

	return &models.PlaceOrderResponse{
		OrderNumber: order.Number,
		Status:      "queued",
		ItemCount:   order.Len(),
		TotalAmount: total,
		Priority:    priority,
	}, nil
}

// DispatchNext takes the oldest queued order and, when a publisher is set,
// publishes it to the kitchen. It reports false when the queue is empty.
// An order whose publish fails is not put back.
func (s *Service) DispatchNext(ctx context.Context, requestID string) (*models.OrderMessage, bool, error) {
	order, ok := s.queue.ProcessNextOrder()
	if !ok {
		return nil, false, nil
	}

	msg := models.NewOrderMessage(order)
	ordersDispatched.Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, msg, msg.RoutingKey(), uint8(msg.Priority)); err != nil {
			s.logger.Error("order_dispatch_failed", "Failed to publish order", requestID, err, map[string]interface{}{
				"order_number": msg.OrderNumber,
			})
			return msg, true, fmt.Errorf("failed to publish order %s: %w", msg.OrderNumber, err)
		}
	}

	s.logger.Info("order_dispatched", "Order dispatched", requestID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"total_amount": msg.TotalAmount,
		"routing_key":  msg.RoutingKey(),
	})
	return msg, true, nil
}

// Pending returns the number of orders waiting to be dispatched
func (s *Service) Pending() int {
	return s.queue.Len()
}

func (s *Service) generateOrderNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	today := now.Format("20060102")
	if today != s.lastOrderDate {
		s.orderCounter = 0
		s.lastOrderDate = today
	}

	s.orderCounter++
	return models.GenerateOrderNumber(now, s.orderCounter)
}
