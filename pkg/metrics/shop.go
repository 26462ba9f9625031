package metrics

import "github.com/prometheus/client_golang/prometheus"

// Storefront metrics, incremented by the order engine.
var (
	// OrdersPlaced counts successfully placed orders by checkout mode.
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vastra",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total orders placed.",
		},
		[]string{"mode"}, // "buy_now" | "cart"
	)

	// OrderAmount tracks placed order totals.
	OrderAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vastra",
		Subsystem: "orders",
		Name:      "amount",
		Help:      "Distribution of placed order totals.",
		Buckets:   []float64{100, 250, 500, 1_000, 2_500, 5_000, 10_000, 25_000},
	})

	// StockConflicts counts conditional stock decrements that found fewer
	// units than requested (a concurrent placement won the race).
	StockConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vastra",
		Subsystem: "orders",
		Name:      "stock_conflicts_total",
		Help:      "Placements aborted because the guarded stock decrement matched no rows.",
	})
)

func init() {
	DefaultRegistry.MustRegister(OrdersPlaced, OrderAmount, StockConflicts)
}
