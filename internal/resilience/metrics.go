package resilience

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BreakerState is nil until MustRegisterMetrics runs.
	BreakerState       *prometheus.GaugeVec
	BreakerTransitions *prometheus.CounterVec
	BreakerOpenedTotal *prometheus.CounterVec

	metricsOnce sync.Once
)

// MustRegisterMetrics registers the breaker collectors with reg. Repeated
// calls are no-ops.
func MustRegisterMetrics(reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		BreakerState = mustRegister(reg, prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "breaker_state",
				Help: "Current breaker state: 0=closed,1=open,2=half-open",
			},
			[]string{"target"},
		))
		BreakerTransitions = mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breaker_transition_total",
				Help: "Count of breaker state transitions",
			},
			[]string{"target", "from", "to"},
		))
		BreakerOpenedTotal = mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breaker_open_total",
				Help: "Number of times a breaker opened",
			},
			[]string{"target"},
		))
	})
}

func mustRegister[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
