// Package commands contains the write side of the application: booking,
// status changes propagated to the local mirror, driver assignment, rating
// and the scheduled maintenance commands run by jobs.
//
// Status changes always follow the same order: the remote order store is
// written and committed first, then the correlated transaction in the local
// mirror is overwritten, then listeners are notified. A failed remote
// write stops the command before the mirror is touched. A failed mirror
// write is reported as errs.LocalSyncError and leaves the remote change in place.
package commands

import (
	"context"

	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
)

// Unit of Work interfaces used by command handlers.
type (
	// TxManager handles transaction lifecycle on the remote order store.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventCollector hands out the status changes recorded during a unit of work.
	EventCollector interface {
		CollectEvents() []order.StatusChanged
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventCollector
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
