package commands

import (
	"context"
	"time"

	"valet/internal/pkg/errs"
)

// RateOrderCommandHandler stores a rating on the driver of a delivered order.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewRateOrderCommandHandler(uowFactory OrderUoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, command RateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	id := command.OrderID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewRemoteWriteError(id.String(), err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = aggregate.Rate(command.Rating(), command.Tip(), h.now()); err != nil {
		return err
	}

	return updateAndCommit(ctx, uow, id.String(), func() error {
		return repo.Update(ctx, aggregate)
	})
}
