// Package ports defines the contracts between the application core and the
// stores and channels it depends on: the remote order store, the local
// transaction mirror and the status change notifiers.
package ports

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
)

// OrderRepository is the remote, authoritative order store.
type OrderRepository interface {
	// Add persists a newly booked order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists every mutable field of an existing order, including the
	// assigned driver and its rating. The status is left as stored; only
	// UpdateStatus changes it. Returns ObjectNotFoundError when the order
	// does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus writes only the status of an existing order. Cancelling an
	// order is an UpdateStatus with Cancelled. Returns ObjectNotFoundError
	// when the order does not exist.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given id or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus returns every order currently in status, ordered by id.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllActive returns every order not in a terminal status, ordered by id.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
