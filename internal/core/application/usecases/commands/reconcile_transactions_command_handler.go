package commands

import (
	"context"
	"errors"

	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"
)

// ReconcileTransactionsResult counts what a reconciliation pass did.
type ReconcileTransactionsResult struct {
	Checked  int
	Resynced int
	Skipped  int
}

// ReconcileTransactionsCommandHandler compares every correlated transaction
// with its remote order and re-syncs those whose status differs.
// Transactions without an order id, transactions whose order no longer
// exists and transactions written since the pass listed them are skipped.
type ReconcileTransactionsCommandHandler struct {
	uowFactory   OrderUoWFactory
	transactions ports.TransactionRepository
	syncer       TransactionSyncer
}

func NewReconcileTransactionsCommandHandler(
	uowFactory OrderUoWFactory,
	transactions ports.TransactionRepository,
	syncer TransactionSyncer,
) ReconcileTransactionsCommandHandler {
	return ReconcileTransactionsCommandHandler{
		uowFactory:   uowFactory,
		transactions: transactions,
		syncer:       syncer,
	}
}

func (h ReconcileTransactionsCommandHandler) Handle(
	ctx context.Context,
	command ReconcileTransactionsCommand,
) (ReconcileTransactionsResult, error) {
	var result ReconcileTransactionsResult

	if err := command.Validate(); err != nil {
		return result, err
	}

	all, err := h.transactions.ListAll(ctx)
	if err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	var failures error

	for _, tx := range all {
		if tx.OrderID() == nil {
			result.Skipped++
			continue
		}
		result.Checked++

		remote, getErr := repo.Get(ctx, *tx.OrderID())
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			result.Skipped++
			continue
		}
		if getErr != nil {
			failures = errors.Join(failures, getErr)
			continue
		}

		if remote.Status() == tx.Status() {
			continue
		}

		latest, moved, checkErr := h.recheck(ctx, repo, tx)
		if checkErr != nil {
			failures = errors.Join(failures, checkErr)
			continue
		}
		if moved {
			result.Skipped++
			continue
		}
		if latest.Status() == tx.Status() {
			continue
		}

		if syncErr := h.resync(ctx, latest); syncErr != nil {
			failures = errors.Join(failures, syncErr)
			continue
		}
		result.Resynced++
	}

	return result, failures
}

// recheck re-reads the mirror record and then the order right before a
// resync. moved is true when the mirror changed since it was listed; a
// status change that ran in between has already written it, and the next
// pass compares again.
func (h ReconcileTransactionsCommandHandler) recheck(
	ctx context.Context,
	repo ports.OrderRepository,
	listed *transaction.Transaction,
) (*order.Order, bool, error) {
	current, err := h.transactions.Get(ctx, listed.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	if current.Status() != listed.Status() {
		return nil, true, nil
	}

	latest, err := repo.Get(ctx, *listed.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return latest, false, nil
}

func (h ReconcileTransactionsCommandHandler) resync(ctx context.Context, remote *order.Order) error {
	cmd, err := NewSyncTransactionStatusCommand(remote.ID(), remote.Status())
	if err != nil {
		return err
	}
	_, err = h.syncer.Handle(ctx, cmd)
	return err
}
