package ports

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
)

// TransactionRepository is the local transaction mirror. It is not
// transactional and is never enlisted in a UnitOfWork.
type TransactionRepository interface {
	// Add persists a new transaction.
	Add(ctx context.Context, tx *transaction.Transaction) error

	// Get returns the transaction with the given id or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error)

	// ListAll returns every transaction in creation order.
	ListAll(ctx context.Context) ([]*transaction.Transaction, error)

	// UpdateStatus overwrites the status of the transaction with the given id.
	// Returns ObjectNotFoundError when it does not exist.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error
}
