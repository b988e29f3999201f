package commands

import (
	"errors"
	"time"

	"valet/internal/pkg/guard"
)

var ErrActivateScheduledOrdersCommandIsNotConstructed = errors.New(
	"ActivateScheduledOrdersCommand must be created via NewActivateScheduledOrdersCommand constructor",
)

// ActivateScheduledOrdersCommand advances every Scheduled order whose pickup
// slot is due at Now.
type ActivateScheduledOrdersCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewActivateScheduledOrdersCommand evaluates pickup slots in now's location.
func NewActivateScheduledOrdersCommand(now time.Time) ActivateScheduledOrdersCommand {
	return ActivateScheduledOrdersCommand{now: now, guard: guard.NewConstructorGuard()}
}

func (c ActivateScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrActivateScheduledOrdersCommandIsNotConstructed)
}

func (c ActivateScheduledOrdersCommand) Now() time.Time {
	return c.now
}
