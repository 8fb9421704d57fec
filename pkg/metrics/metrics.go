package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stock operation outcomes exported at /metrics. High-contention SKUs
// show up as a rising insufficient counter.
var (
	StockDecrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "threadline",
		Subsystem: "stock",
		Name:      "decrements_total",
		Help:      "Stock decrement attempts by outcome.",
	}, []string{"outcome"}) // applied | insufficient | not_found | error

	StockIncrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "threadline",
		Subsystem: "stock",
		Name:      "increments_total",
		Help:      "Stock increment attempts by outcome.",
	}, []string{"outcome"}) // applied | not_found | error

	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "threadline",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Order creation attempts by outcome.",
	}, []string{"outcome"}) // created | rejected | error
)
