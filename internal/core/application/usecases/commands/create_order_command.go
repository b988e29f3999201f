package commands

import (
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand books a new order together with its mirror transaction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), true, "2025-06-01", "09:30", order.Details{
//	    PickupLocation:  "12 Oak St",
//	    DropoffLocation: "Midas Auto Service",
//	    VehicleInfo:     "Tesla Model 3",
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	roundTrip bool
	schedule  *order.Schedule
	details   order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the booking. Empty scheduledDate and
// scheduledTime mean an immediate booking; giving only one of them is invalid.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	roundTrip bool,
	scheduledDate, scheduledTime string,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		roundTrip: roundTrip,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSchedule(scheduledDate, scheduledTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) IsRoundTrip() bool {
	return c.roundTrip
}

// Schedule returns the requested pickup slot, nil for an immediate booking.
func (c CreateOrderCommand) Schedule() *order.Schedule {
	return c.schedule
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSchedule(date, clock string) error {
	if date == "" && clock == "" {
		return nil
	}
	if date == "" || clock == "" {
		return errs.NewValueIsRequiredErrorWithCause("schedule",
			errors.New("scheduledDate and scheduledTime must be given together"))
	}

	slot, err := order.NewSchedule(date, clock)
	if err != nil {
		return err
	}
	c.schedule = &slot
	return nil
}
