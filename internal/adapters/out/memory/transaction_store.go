package memory

import (
	"context"
	"errors"
	"sync"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/pkg/errs"
)

// ErrDuplicateTransaction is returned when adding a transaction whose id is taken.
var ErrDuplicateTransaction = errors.New("transaction already exists")

type transactionRecord struct {
	id       kernel.UUID
	orderID  *kernel.UUID
	status   order.Status
	snapshot transaction.Snapshot
}

func (r transactionRecord) restore() (*transaction.Transaction, error) {
	return transaction.RestoreTransaction(r.id, r.orderID, r.status, r.snapshot)
}

// TransactionStore implements ports.TransactionRepository. ListAll returns
// transactions in insertion order.
type TransactionStore struct {
	mu      sync.RWMutex
	records []transactionRecord
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Add(_ context.Context, tx *transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(tx.ID()) >= 0 {
		return ErrDuplicateTransaction
	}

	rec := transactionRecord{id: tx.ID(), status: tx.Status(), snapshot: tx.Snapshot()}
	if id := tx.OrderID(); id != nil {
		orderID := *id
		rec.orderID = &orderID
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *TransactionStore) Get(_ context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("transaction", id.String())
	}
	return s.records[i].restore()
}

func (s *TransactionStore) ListAll(_ context.Context) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*transaction.Transaction, 0, len(s.records))
	for _, rec := range s.records {
		tx, err := rec.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *TransactionStore) UpdateStatus(_ context.Context, id kernel.UUID, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errs.NewObjectNotFoundError("transaction", id.String())
	}
	tx, err := s.records[i].restore()
	if err != nil {
		return err
	}
	if err = tx.OverwriteStatus(status); err != nil {
		return err
	}
	s.records[i].status = tx.Status()
	return nil
}

// Len returns the number of stored transactions.
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *TransactionStore) indexOf(id kernel.UUID) int {
	for i, rec := range s.records {
		if rec.id.IsEqual(id) {
			return i
		}
	}
	return -1
}
