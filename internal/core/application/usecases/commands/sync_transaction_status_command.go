package commands

import (
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/guard"
)

var ErrSyncTransactionStatusCommandIsNotConstructed = errors.New(
	"SyncTransactionStatusCommand must be created via NewSyncTransactionStatusCommand constructor",
)

// SyncTransactionStatusCommand asks for the transaction correlated with an
// order to take the given status.
type SyncTransactionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewSyncTransactionStatusCommand validates the order id and status.
func NewSyncTransactionStatusCommand(orderID kernel.UUID, status order.Status) (SyncTransactionStatusCommand, error) {
	cmd := SyncTransactionStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return SyncTransactionStatusCommand{}, err
	}

	return cmd, nil
}

func (c SyncTransactionStatusCommand) Validate() error {
	return c.guard.Validate(ErrSyncTransactionStatusCommandIsNotConstructed)
}

func (c SyncTransactionStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SyncTransactionStatusCommand) Status() order.Status {
	return c.status
}

func (c *SyncTransactionStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SyncTransactionStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
