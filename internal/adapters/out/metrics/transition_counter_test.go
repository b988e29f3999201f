package metrics

import (
	"context"
	"testing"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransitionCounter_Notify(t *testing.T) {
	t.Run("should count transitions per from and to pair", func(t *testing.T) {
		counter := NewTransitionCounter(prometheus.NewRegistry())
		ctx := context.Background()
		id := kernel.NewUUID()

		counter.Notify(ctx, order.StatusChanged{OrderID: id, From: order.FindingDriver, To: order.DriverOnWay})
		counter.Notify(ctx, order.StatusChanged{OrderID: id, From: order.FindingDriver, To: order.DriverOnWay})
		counter.Notify(ctx, order.StatusChanged{OrderID: id, From: order.DriverOnWay, To: order.Cancelled})

		assert.InDelta(t, 2, testutil.ToFloat64(
			counter.transitions.WithLabelValues("FINDING_DRIVER", "DRIVER_ON_WAY")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(
			counter.transitions.WithLabelValues("DRIVER_ON_WAY", "CANCELLED")), 0)
		assert.Equal(t, 2, testutil.CollectAndCount(counter.transitions))
	})
}
