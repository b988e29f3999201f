package transaction

import (
	"errors"
	"fmt"
	"strings"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
)

// OrderNumberPrefix starts every human-facing order number.
const OrderNumberPrefix = "VLT-"

// ErrTransactionIsNotConstructed is returned when a Transaction bypassed its constructors.
var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction")

// Snapshot is the booking data copied onto a transaction when it is created.
type Snapshot struct {
	OrderNumber string
	Vehicle     string
	Destination string
	Schedule    *order.Schedule
}

// Transaction mirrors an order in the local store.
type Transaction struct {
	id       kernel.UUID
	orderID  *kernel.UUID
	status   order.Status
	snapshot Snapshot

	isConstructed bool
}

// NewTransaction creates a mirror record. orderID may be nil for purely
// local transactions that are never synchronized.
//
// Example:
//
//	tx, err := transaction.NewTransaction(kernel.NewUUID(), &orderID, o.Status(), transaction.Snapshot{
//	    OrderNumber: transaction.OrderNumberFor(orderID),
//	    Vehicle:     o.Details().VehicleInfo,
//	    Destination: o.Details().DropoffLocation,
//	    Schedule:    o.Schedule(),
//	})
func NewTransaction(id kernel.UUID, orderID *kernel.UUID, status order.Status, snapshot Snapshot) (*Transaction, error) {
	tx := &Transaction{isConstructed: true}

	if err := errors.Join(
		tx.setID(id),
		tx.setOrderID(orderID),
		tx.setStatus(status),
		tx.setSnapshot(snapshot),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// RestoreTransaction rebuilds a transaction read from storage.
func RestoreTransaction(id kernel.UUID, orderID *kernel.UUID, status order.Status, snapshot Snapshot) (*Transaction, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Transaction{
		id:            id,
		orderID:       orderID,
		status:        status,
		snapshot:      snapshot,
		isConstructed: true,
	}, nil
}

// OrderNumberFor derives the display order number from an order identifier.
func OrderNumberFor(orderID kernel.UUID) string {
	raw := strings.ReplaceAll(orderID.String(), "-", "")
	return OrderNumberPrefix + strings.ToUpper(raw[:6])
}

func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// OrderID returns the correlated order identifier, or nil when there is none.
func (t *Transaction) OrderID() *kernel.UUID {
	return t.orderID
}

func (t *Transaction) Status() order.Status {
	return t.status
}

func (t *Transaction) Snapshot() Snapshot {
	return t.snapshot
}

// CorrelatesWith reports whether t mirrors the order identified by orderID.
func (t *Transaction) CorrelatesWith(orderID kernel.UUID) bool {
	return t.orderID != nil && t.orderID.IsEqual(orderID)
}

// OverwriteStatus replaces the mirrored status. Writing the same value twice
// leaves the transaction exactly as a single write would.
func (t *Transaction) OverwriteStatus(status order.Status) error {
	return t.setStatus(status)
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	t.orderID = &id
	return nil
}

func (t *Transaction) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Transaction) setSnapshot(s Snapshot) error {
	if !strings.HasPrefix(s.OrderNumber, OrderNumberPrefix) {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q does not start with %s", s.OrderNumber, OrderNumberPrefix))
	}
	if s.Schedule != nil {
		if err := s.Schedule.Validate(); err != nil {
			return err
		}
		slot := *s.Schedule
		s.Schedule = &slot
	}
	t.snapshot = s
	return nil
}
