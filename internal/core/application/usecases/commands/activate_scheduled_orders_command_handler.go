package commands

import (
	"context"
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
)

// ActivateScheduledOrdersResult lists the orders that left Scheduled.
type ActivateScheduledOrdersResult struct {
	Activated []kernel.UUID
}

// ActivateScheduledOrdersCommandHandler moves due Scheduled orders into the
// active flow through the regular status change path, so each activation is
// mirrored and announced like a manual one.
type ActivateScheduledOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	activator  OrderActivator
}

func NewActivateScheduledOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	activator OrderActivator,
) ActivateScheduledOrdersCommandHandler {
	return ActivateScheduledOrdersCommandHandler{uowFactory: uowFactory, activator: activator}
}

// Handle keeps going past individual failures. An order whose mirror write
// failed still counts as activated; every failure is joined into the
// returned error. Orders that left Scheduled after they were listed are
// skipped and not counted.
func (h ActivateScheduledOrdersCommandHandler) Handle(
	ctx context.Context,
	command ActivateScheduledOrdersCommand,
) (ActivateScheduledOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return ActivateScheduledOrdersResult{}, err
	}

	due, err := h.dueOrders(ctx, command)
	if err != nil {
		return ActivateScheduledOrdersResult{}, err
	}

	result := ActivateScheduledOrdersResult{Activated: make([]kernel.UUID, 0, len(due))}
	var failures error

	for _, id := range due {
		cmd, cmdErr := NewAdvanceOrderCommand(id)
		if cmdErr != nil {
			failures = errors.Join(failures, cmdErr)
			continue
		}

		res, advErr := h.activator.Activate(ctx, cmd)
		if res.Changed {
			result.Activated = append(result.Activated, id)
		}
		if advErr != nil {
			failures = errors.Join(failures, advErr)
		}
	}

	return result, failures
}

func (h ActivateScheduledOrdersCommandHandler) dueOrders(
	ctx context.Context,
	command ActivateScheduledOrdersCommand,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scheduled, err := uow.OrderRepository().GetAllInStatus(ctx, order.Scheduled)
	if err != nil {
		return nil, err
	}

	due := make([]kernel.UUID, 0, len(scheduled))
	for _, o := range scheduled {
		if o.Schedule() == nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("schedule",
				errors.New("scheduled order "+o.ID().String()+" has no pickup slot"))
		}
		if o.Schedule().IsDue(command.Now()) {
			due = append(due, o.ID())
		}
	}

	return due, nil
}
