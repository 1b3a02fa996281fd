package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted into the queue",
	})

	ordersDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_dispatched_total",
		Help: "Orders taken off the queue for the kitchen",
	})
)
