package commands

import (
	"context"

	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
)

// OrderActivator moves a single Scheduled order into the active flow.
// Implemented by AdvanceOrderCommandHandler.
type OrderActivator interface {
	Activate(ctx context.Context, command AdvanceOrderCommand) (StatusChangeResult, error)
}

// AdvanceOrderCommandHandler advances an order along its trip-type path and
// mirrors the new status into the correlated transaction.
//
// Example:
//
//	handler := NewAdvanceOrderCommandHandler(uowFactory, syncer, notifier)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case errors.Is(err, errs.ErrRemoteWrite):
//	    // nothing changed, safe to retry
//	case errors.Is(err, errs.ErrLocalSync):
//	    // res.To is committed remotely, mirror is behind
//	}
type AdvanceOrderCommandHandler struct {
	changer statusChanger
}

func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	syncer TransactionSyncer,
	notifier ports.StatusChangeNotifier,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		changer: statusChanger{uowFactory: uowFactory, syncer: syncer, notifier: notifier},
	}
}

// Handle is a no-op for delivered and cancelled orders: the result reports
// Changed == false and neither store is written.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) (StatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return StatusChangeResult{}, err
	}
	return h.changer.change(ctx, command.OrderID(), (*order.Order).Advance)
}

// Activate advances the order only while it is still Scheduled. An order
// moved on by someone else since it was listed is reported with
// Changed == false and neither store is written.
func (h AdvanceOrderCommandHandler) Activate(ctx context.Context, command AdvanceOrderCommand) (StatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return StatusChangeResult{}, err
	}
	return h.changer.change(ctx, command.OrderID(), (*order.Order).Activate)
}
