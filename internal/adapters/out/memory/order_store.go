// Package memory keeps orders and transactions in process memory. It backs
// the STORAGE=memory development mode and the application scenario tests.
package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"
)

// ErrDuplicateOrder is returned when adding an order whose id is taken.
var ErrDuplicateOrder = errors.New("order already exists")

// columns marks which parts of a staged record a write owns.
type columns uint8

const (
	statusColumn columns = 1 << iota
	detailColumns

	allColumns = statusColumn | detailColumns
)

type orderRecord struct {
	id        kernel.UUID
	status    order.Status
	roundTrip bool
	schedule  *order.Schedule
	details   order.Details
	driver    *order.Driver
	dirty     columns
}

func recordOf(o *order.Order) orderRecord {
	r := orderRecord{
		id:        o.ID(),
		status:    o.Status(),
		roundTrip: o.IsRoundTrip(),
		details:   o.Details(),
	}
	if s := o.Schedule(); s != nil {
		slot := *s
		r.schedule = &slot
	}
	if d := o.Driver(); d != nil {
		driver := *d
		r.driver = &driver
	}
	return r
}

func (r orderRecord) restore() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.status, r.roundTrip, r.schedule, r.details, r.driver)
}

// OrderStore is the committed order state shared by every unit of work.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]orderRecord
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[kernel.UUID]orderRecord)}
}

func (s *OrderStore) lookup(id kernel.UUID) (orderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.orders[id]
	return r, ok
}

func (s *OrderStore) all() []orderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]orderRecord, 0, len(s.orders))
	for _, r := range s.orders {
		out = append(out, r)
	}
	return out
}

func (s *OrderStore) apply(writes map[kernel.UUID]orderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range writes {
		if existing, ok := s.orders[id]; ok {
			r = existing.merge(r)
		}
		r.dirty = 0
		s.orders[id] = r
	}
}

// merge overlays the columns owned by w onto the committed record r.
func (r orderRecord) merge(w orderRecord) orderRecord {
	out := r
	if w.dirty&detailColumns != 0 {
		status := out.status
		out = w
		out.status = status
	}
	if w.dirty&statusColumn != 0 {
		out.status = w.status
	}
	return out
}

// UnitOfWorkFactory creates units of work over a shared OrderStore.
type UnitOfWorkFactory struct {
	store *OrderStore
}

func NewUnitOfWorkFactory(store *OrderStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages order writes and applies them to the store on Commit.
// Staged writes are visible to reads made through the same unit of work.
type UnitOfWork struct {
	store   *OrderStore
	active  bool
	staged  map[kernel.UUID]orderRecord
	tracked []*order.Order
	events  []order.StatusChanged
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.staged = make(map[kernel.UUID]orderRecord)
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return errs.NewValueIsInvalidError("no active unit of work")
	}
	uow.store.apply(uow.staged)
	for _, o := range uow.tracked {
		uow.events = append(uow.events, o.Events()...)
		o.ClearEvents()
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return errs.NewValueIsInvalidError("no active unit of work")
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) CollectEvents() []order.StatusChanged {
	events := uow.events
	uow.events = nil
	return events
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.staged = nil
	uow.tracked = nil
}

func (uow *UnitOfWork) read(id kernel.UUID) (orderRecord, bool) {
	if r, ok := uow.staged[id]; ok {
		return r, true
	}
	return uow.store.lookup(id)
}

func (uow *UnitOfWork) write(o *order.Order, cols columns) {
	r := recordOf(o)
	r.dirty = cols
	uow.writeRecord(r, o)
}

// writeRecord stages r when a transaction is open and applies it directly
// otherwise. o is the aggregate whose events the write carries.
func (uow *UnitOfWork) writeRecord(r orderRecord, o *order.Order) {
	if uow.active {
		if prev, ok := uow.staged[r.id]; ok {
			r.dirty |= prev.dirty
		}
		uow.staged[r.id] = r
		uow.tracked = append(uow.tracked, o)
		return
	}
	uow.store.apply(map[kernel.UUID]orderRecord{r.id: r})
	uow.events = append(uow.events, o.Events()...)
	o.ClearEvents()
}

func (uow *UnitOfWork) snapshot() []orderRecord {
	merged := make(map[kernel.UUID]orderRecord)
	for _, r := range uow.store.all() {
		merged[r.id] = r
	}
	for id, r := range uow.staged {
		merged[id] = r
	}
	out := make([]orderRecord, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b orderRecord) int {
		return strings.Compare(a.id.String(), b.id.String())
	})
	return out
}

// OrderRepository implements ports.OrderRepository on top of a UnitOfWork.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.read(aggregate.ID()); exists {
		return ErrDuplicateOrder
	}
	r.uow.write(aggregate, allColumns)
	return nil
}

// Update writes every field except the status, which only UpdateStatus changes.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	current, exists := r.uow.read(aggregate.ID())
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	next := recordOf(aggregate)
	next.status = current.status
	next.dirty = detailColumns
	r.uow.writeRecord(next, aggregate)
	return nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	current, exists := r.uow.read(aggregate.ID())
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	current.status = aggregate.Status()
	current.dirty = statusColumn
	r.uow.writeRecord(current, aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.uow.read(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.restore()
}

func (r *OrderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return r.filter(func(rec orderRecord) bool { return rec.status == status })
}

func (r *OrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return r.filter(func(rec orderRecord) bool { return !rec.status.IsTerminal() })
}

func (r *OrderRepository) filter(keep func(orderRecord) bool) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	for _, rec := range r.uow.snapshot() {
		if !keep(rec) {
			continue
		}
		o, err := rec.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
