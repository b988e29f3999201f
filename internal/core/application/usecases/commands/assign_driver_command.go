package commands

import (
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a driver to an active order.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	driver  order.Driver

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID kernel.UUID, name, phone, vehicle string) (AssignDriverCommand, error) {
	driver, driverErr := order.NewDriver(name, phone, vehicle)

	if err := errors.Join(orderID.Validate(), driverErr); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID: orderID,
		driver:  driver,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDriverCommand) Driver() order.Driver {
	return c.driver
}
