package commands

import (
	"errors"

	"valet/internal/pkg/guard"
)

var ErrReconcileTransactionsCommandIsNotConstructed = errors.New(
	"ReconcileTransactionsCommand must be created via NewReconcileTransactionsCommand constructor",
)

// ReconcileTransactionsCommand re-syncs mirror records that fell behind
// their remote order, typically after a LocalSyncError.
type ReconcileTransactionsCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileTransactionsCommand() ReconcileTransactionsCommand {
	return ReconcileTransactionsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileTransactionsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTransactionsCommandIsNotConstructed)
}
