// Package postgres provides the GORM-backed remote order store.
//
// A GormUnitOfWork wraps one database transaction. Repositories obtained
// from it between Begin and Commit share that transaction; outside of one
// they write straight to the pool. Orders written through the repository are
// tracked, and their status-change events become available through
// CollectEvents only once the write is durable.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().UpdateStatus(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	for _, e := range uow.CollectEvents() {
//	    notifier.Notify(ctx, e)
//	}
package postgres

import (
	"context"

	"valet/internal/adapters/out/postgres/orderrepo"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction and the order
// aggregates written inside it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	pending []trackedAggregate
	events  []order.StatusChanged
}

// Begin starts a transaction. A second Begin on an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit makes the transaction durable and releases the events of every
// order written inside it.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.pending = nil
		return err
	}

	for _, tracked := range uow.pending {
		uow.release(tracked.Aggregate)
	}
	uow.pending = nil
	return nil
}

// Rollback discards the transaction and the aggregates tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.pending = nil
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to
// the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// CollectEvents drains the events released by committed writes.
func (uow *GormUnitOfWork) CollectEvents() []order.StatusChanged {
	events := uow.events
	uow.events = nil
	return events
}

// TrackAggregate is called by repositories after every successful write.
// Writes outside a transaction are already durable, so their events are
// released immediately.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	if uow.tx == nil {
		uow.release(aggregate)
		return
	}
	uow.pending = append(uow.pending, trackedAggregate{ID: id, Aggregate: aggregate})
}

func (uow *GormUnitOfWork) release(aggregate any) {
	o, ok := aggregate.(*order.Order)
	if !ok {
		return
	}
	uow.events = append(uow.events, o.Events()...)
	o.ClearEvents()
}
