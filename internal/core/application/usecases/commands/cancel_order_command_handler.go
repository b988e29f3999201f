package commands

import (
	"context"

	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and mirrors Cancelled into the
// correlated transaction. Cancelling a delivered or already cancelled order
// is a no-op rather than an error.
type CancelOrderCommandHandler struct {
	changer statusChanger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	syncer TransactionSyncer,
	notifier ports.StatusChangeNotifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		changer: statusChanger{uowFactory: uowFactory, syncer: syncer, notifier: notifier},
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (StatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return StatusChangeResult{}, err
	}
	return h.changer.change(ctx, command.OrderID(), (*order.Order).Cancel)
}
