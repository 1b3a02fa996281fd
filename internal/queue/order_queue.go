// Package queue holds orders waiting to be processed, oldest first.
package queue

import (
	"sync"

	"restaurant-menu/internal/models"
)

// OrderQueue is a FIFO of pending orders, safe for concurrent use.
type OrderQueue struct {
	mu      sync.Mutex
	pending []*models.Order
}

func New() *OrderQueue {
	return &OrderQueue{}
}

// AddOrder enqueues an order at the tail
func (q *OrderQueue) AddOrder(order *models.Order) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, order)
}

// ProcessNextOrder removes and returns the oldest order. It returns false
// when the queue is empty.
func (q *OrderQueue) ProcessNextOrder() (*models.Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, false
	}
	order := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return order, true
}

func (q *OrderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
