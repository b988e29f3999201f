// Package notify combines status change notifiers.
package notify

import (
	"context"

	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"

	"go.uber.org/zap"
)

// Fanout delivers every event to each notifier in order. Nil notifiers are
// skipped so optional sinks can be passed unconditionally.
type Fanout struct {
	notifiers []ports.StatusChangeNotifier
	logger    *zap.Logger
}

func NewFanout(logger *zap.Logger, notifiers ...ports.StatusChangeNotifier) *Fanout {
	active := make([]ports.StatusChangeNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	return &Fanout{
		notifiers: active,
		logger:    logger.With(zap.String("component", "status_notifier")),
	}
}

// Notify logs event and delivers it to every sink. A panicking sink is
// logged and skipped.
func (f *Fanout) Notify(ctx context.Context, event order.StatusChanged) {
	f.logger.Info("order status changed",
		zap.String("order_id", event.OrderID.String()),
		zap.Stringer("from", event.From),
		zap.Stringer("to", event.To),
	)
	for _, n := range f.notifiers {
		f.deliver(ctx, n, event)
	}
}

func (f *Fanout) deliver(ctx context.Context, n ports.StatusChangeNotifier, event order.StatusChanged) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("status notifier panicked",
				zap.String("order_id", event.OrderID.String()),
				zap.Any("panic", r),
			)
		}
	}()
	n.Notify(ctx, event)
}
