package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts accepted cart mutation requests by operation.
	CartMutationsTotal *prometheus.CounterVec
	// CartItems reports the current sum of quantities held in the cart.
	CartItems prometheus.Gauge
	// CartValue reports the current discounted cart total in rupees.
	CartValue prometheus.Gauge
	// OrdersPlacedTotal counts orders placed through checkout by outcome.
	OrdersPlacedTotal *prometheus.CounterVec
	// OrderValue records grand totals of placed orders in rupees.
	OrderValue prometheus.Histogram
	// ContactSubmissionsTotal counts contact form submissions by order type.
	ContactSubmissionsTotal *prometheus.CounterVec
	// EventsEmittedTotal counts domain events by topic.
	EventsEmittedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationsTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart mutation requests by operation.",
		}, []string{"op"}))
		CartItems = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_items",
			Help:      "Current number of units in the cart.",
		}))
		CartValue = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_value_rupees",
			Help:      "Current discounted cart total in rupees.",
		}))
		OrdersPlacedTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Count of checkout attempts by result.",
		}, []string{"result"}))
		OrderValue = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value_rupees",
			Help:      "Grand total of placed orders in rupees.",
			Buckets:   []float64{500, 1000, 3000, 5000, 10000, 25000, 50000, 100000},
		}))
		ContactSubmissionsTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Count of accepted contact form submissions.",
		}, []string{"order_type"}))
		EventsEmittedTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_emitted_total",
			Help:      "Count of domain events emitted by topic.",
		}, []string{"topic"}))
	})
}
