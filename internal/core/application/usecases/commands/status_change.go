package commands

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"
)

// StatusChangeResult describes the outcome of an advance or cancel.
//
// Changed is false when the order was already terminal; nothing was written
// in that case. TransactionID is the correlated mirror record that received
// the new status, nil when no transaction correlates with the order.
type StatusChangeResult struct {
	OrderID       kernel.UUID
	From          order.Status
	To            order.Status
	Changed       bool
	TransactionID *kernel.UUID
}

const notifyTimeout = 5 * time.Second

type statusChanger struct {
	uowFactory OrderUoWFactory
	syncer     TransactionSyncer
	notifier   ports.StatusChangeNotifier
}

// change applies transition to the order identified by orderID.
//
// The remote write and commit strictly precede the mirror write, and
// listeners are notified only after the mirror write was attempted. Errors:
//   - ObjectNotFoundError when the order does not exist
//   - InvalidStateError when the stored status is not a known status
//   - RemoteWriteError when the remote store rejects the write; the mirror is untouched
//   - LocalSyncError when only the mirror write failed; the result is still filled in
func (c statusChanger) change(
	ctx context.Context,
	orderID kernel.UUID,
	transition func(*order.Order) (order.Transition, error),
) (StatusChangeResult, error) {
	result := StatusChangeResult{OrderID: orderID}

	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, errs.NewRemoteWriteError(orderID.String(), err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return result, err
	}

	t, err := transition(aggregate)
	if err != nil {
		return result, err
	}

	result.From, result.To, result.Changed = t.From, t.To, t.Changed()
	if !t.Changed() {
		return result, nil
	}

	if err = repo.UpdateStatus(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return result, err
		}
		return result, errs.NewRemoteWriteError(orderID.String(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return result, errs.NewRemoteWriteError(orderID.String(), err)
	}

	events := uow.CollectEvents()

	cmd, err := NewSyncTransactionStatusCommand(orderID, t.To)
	if err != nil {
		return result, err
	}

	synced, err := c.syncer.Handle(ctx, cmd)
	result.TransactionID = synced.TransactionID

	c.publish(ctx, events)
	return result, err
}

// publish hands events to the notifier on a context that outlives the
// caller's cancellation but is bounded by notifyTimeout.
func (c statusChanger) publish(ctx context.Context, events []order.StatusChanged) {
	if c.notifier == nil || len(events) == 0 {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	for _, event := range events {
		c.notifier.Notify(notifyCtx, event)
	}
}
