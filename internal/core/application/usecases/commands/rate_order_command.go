package commands

import (
	"errors"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records the rider's rating and tip for a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	rating  int
	tip     float64

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID kernel.UUID, rating int, tip float64) (RateOrderCommand, error) {
	var rangeErr error
	if rating < order.MinRating || rating > order.MaxRating {
		rangeErr = errs.NewValueIsOutOfRangeError("rating", rating, order.MinRating, order.MaxRating)
	}
	var tipErr error
	if tip < 0 {
		tipErr = errs.NewValueIsInvalidErrorWithCause("tip", errors.New("must not be negative"))
	}

	if err := errors.Join(orderID.Validate(), rangeErr, tipErr); err != nil {
		return RateOrderCommand{}, err
	}

	return RateOrderCommand{
		orderID: orderID,
		rating:  rating,
		tip:     tip,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) Rating() int {
	return c.rating
}

func (c RateOrderCommand) Tip() float64 {
	return c.tip
}
