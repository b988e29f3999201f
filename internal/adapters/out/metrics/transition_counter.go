// Package metrics exposes order status transitions as Prometheus counters.
package metrics

import (
	"context"

	"valet/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransitionCounter implements ports.StatusChangeNotifier by counting every
// committed transition, labelled with the from and to wire codes.
type TransitionCounter struct {
	transitions *prometheus.CounterVec
}

// NewTransitionCounter registers valet_order_status_transitions_total with reg.
func NewTransitionCounter(reg prometheus.Registerer) *TransitionCounter {
	return &TransitionCounter{
		transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "valet_order_status_transitions_total",
			Help: "The total number of committed order status transitions",
		}, []string{"from", "to"}),
	}
}

func (c *TransitionCounter) Notify(_ context.Context, event order.StatusChanged) {
	c.transitions.WithLabelValues(event.From.String(), event.To.String()).Inc()
}
