package commands_test

import (
	"context"
	"sync"
	"testing"

	"valet/internal/adapters/out/memory"
	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, s order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, s)
	if o, ok := args.Get(0).([]*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).([]*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) CollectEvents() []order.StatusChanged {
	args := m.Called()
	if events, ok := args.Get(0).([]order.StatusChanged); ok {
		return events
	}
	return nil
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *transaction.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*transaction.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	args := m.Called(ctx)
	if txs, ok := args.Get(0).([]*transaction.Transaction); ok {
		return txs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, id kernel.UUID, s order.Status) error {
	return m.Called(ctx, id, s).Error(0)
}

type MockTransactionSyncer struct{ mock.Mock }

func (m *MockTransactionSyncer) Handle(
	ctx context.Context,
	cmd commands.SyncTransactionStatusCommand,
) (commands.SyncTransactionStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SyncTransactionStatusResult), args.Error(1)
}

type MockOrderActivator struct{ mock.Mock }

func (m *MockOrderActivator) Activate(
	ctx context.Context,
	cmd commands.AdvanceOrderCommand,
) (commands.StatusChangeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.StatusChangeResult), args.Error(1)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []order.StatusChanged
}

func (n *recordingNotifier) Notify(_ context.Context, event order.StatusChanged) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []order.StatusChanged {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]order.StatusChanged(nil), n.events...)
}

type funcNotifier func(ctx context.Context, event order.StatusChanged)

func (f funcNotifier) Notify(ctx context.Context, event order.StatusChanged) {
	f(ctx, event)
}

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW {
	return f()
}

// storesFixture wires the handlers to in-memory stores.
type storesFixture struct {
	orders       *memory.OrderStore
	transactions *memory.TransactionStore
	uowFactory   commands.OrderUoWFactory
	syncer       commands.SyncTransactionStatusCommandHandler
	notifier     *recordingNotifier
	advance      commands.AdvanceOrderCommandHandler
	cancel       commands.CancelOrderCommandHandler
}

func newStoresFixture() *storesFixture {
	f := &storesFixture{
		orders:       memory.NewOrderStore(),
		transactions: memory.NewTransactionStore(),
		notifier:     &recordingNotifier{},
	}
	factory := memory.NewUnitOfWorkFactory(f.orders)
	f.uowFactory = orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
	f.syncer = commands.NewSyncTransactionStatusCommandHandler(f.transactions)
	f.advance = commands.NewAdvanceOrderCommandHandler(f.uowFactory, f.syncer, f.notifier)
	f.cancel = commands.NewCancelOrderCommandHandler(f.uowFactory, f.syncer, f.notifier)
	return f
}

func testDetails() order.Details {
	return order.Details{
		PickupLocation:  "12 Oak St",
		DropoffLocation: "Downtown Garage",
		VehicleInfo:     "Tesla Model 3",
	}
}

// seedOrder stores a new order in status.
func (f *storesFixture) seedOrder(t *testing.T, status order.Status, roundTrip bool) *order.Order {
	t.Helper()
	var schedule *order.Schedule
	if status == order.Scheduled {
		slot, err := order.NewSchedule("2030-01-01", "09:00")
		require.NoError(t, err)
		schedule = &slot
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), status, roundTrip, schedule, testDetails(), nil)
	require.NoError(t, err)

	uow := f.uowFactory.Create()
	require.NoError(t, uow.OrderRepository().Add(t.Context(), o))
	return o
}

func (f *storesFixture) seedTransaction(t *testing.T, orderID *kernel.UUID, status order.Status) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.NewTransaction(kernel.NewUUID(), orderID, status, transaction.Snapshot{
		OrderNumber: "VLT-000001",
		Vehicle:     "Tesla Model 3",
		Destination: "Downtown Garage",
	})
	require.NoError(t, err)
	require.NoError(t, f.transactions.Add(t.Context(), tx))
	return tx
}

func (f *storesFixture) remoteStatus(t *testing.T, id kernel.UUID) order.Status {
	t.Helper()
	o, err := f.uowFactory.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o.Status()
}

func (f *storesFixture) mirrorStatus(t *testing.T, id kernel.UUID) order.Status {
	t.Helper()
	tx, err := f.transactions.Get(t.Context(), id)
	require.NoError(t, err)
	return tx.Status()
}
