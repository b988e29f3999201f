package commands

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"
)

// SyncTransactionStatusResult names the transaction that was overwritten.
// TransactionID is nil when no transaction correlates with the order.
type SyncTransactionStatusResult struct {
	TransactionID *kernel.UUID
}

// TransactionSyncer propagates a status to the local mirror.
type TransactionSyncer interface {
	Handle(ctx context.Context, command SyncTransactionStatusCommand) (SyncTransactionStatusResult, error)
}

// SyncTransactionStatusCommandHandler locates the transaction whose order id
// matches the command by scanning the whole mirror, and overwrites its status.
//
// A correlation miss completes successfully without touching any record.
// Running the same command twice leaves the mirror as a single run would.
//
// Example:
//
//	cmd, _ := commands.NewSyncTransactionStatusCommand(orderID, order.DriverOnWay)
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrLocalSync) {
//	    // remote store is ahead of the mirror until the next reconciliation
//	}
type SyncTransactionStatusCommandHandler struct {
	transactions ports.TransactionRepository
}

func NewSyncTransactionStatusCommandHandler(transactions ports.TransactionRepository) SyncTransactionStatusCommandHandler {
	return SyncTransactionStatusCommandHandler{transactions: transactions}
}

// Handle returns errs.LocalSyncError when the mirror cannot be read or written.
func (h SyncTransactionStatusCommandHandler) Handle(
	ctx context.Context,
	command SyncTransactionStatusCommand,
) (SyncTransactionStatusResult, error) {
	if err := command.Validate(); err != nil {
		return SyncTransactionStatusResult{}, err
	}

	orderID := command.OrderID()

	all, err := h.transactions.ListAll(ctx)
	if err != nil {
		return SyncTransactionStatusResult{}, errs.NewLocalSyncError(orderID.String(), "", err)
	}

	match := findCorrelated(all, orderID)
	if match == nil {
		return SyncTransactionStatusResult{}, nil
	}

	txID := match.ID()
	result := SyncTransactionStatusResult{TransactionID: &txID}

	if err = h.transactions.UpdateStatus(ctx, txID, command.Status()); err != nil {
		return result, errs.NewLocalSyncError(orderID.String(), txID.String(), err)
	}

	return result, nil
}

func findCorrelated(all []*transaction.Transaction, orderID kernel.UUID) *transaction.Transaction {
	for _, tx := range all {
		if tx.CorrelatesWith(orderID) {
			return tx
		}
	}
	return nil
}
