package commands

import (
	"context"
	"errors"

	"valet/internal/pkg/errs"
)

// AssignDriverCommandHandler stores the assigned driver on the remote order.
// The local mirror does not carry driver details and is not written.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{uowFactory: uowFactory}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
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

	if err = aggregate.AssignDriver(command.Driver()); err != nil {
		return err
	}

	return updateAndCommit(ctx, uow, aggregate.ID().String(), func() error {
		return repo.Update(ctx, aggregate)
	})
}

func updateAndCommit(ctx context.Context, uow OrderUoW, id string, write func() error) error {
	if err := write(); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		return errs.NewRemoteWriteError(id, err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewRemoteWriteError(id, err)
	}

	return nil
}
