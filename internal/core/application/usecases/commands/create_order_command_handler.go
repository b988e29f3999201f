package commands

import (
	"context"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/core/ports"
	"valet/internal/pkg/errs"
)

// CreateOrderResult identifies the booked order and its mirror record.
type CreateOrderResult struct {
	OrderID       kernel.UUID
	TransactionID kernel.UUID
	OrderNumber   string
	Status        order.Status
}

// CreateOrderCommandHandler books an order in the remote store and then
// records the correlated transaction in the local mirror.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	transactions ports.TransactionRepository
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	transactions ports.TransactionRepository,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		transactions: transactions,
	}
}

// Handle returns RemoteWriteError when the order could not be stored, in
// which case no transaction is created. A failure to store the transaction
// afterwards is a LocalSyncError and the result is still filled in.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.IsRoundTrip(), command.Schedule(), command.Details())
	if err != nil {
		return CreateOrderResult{}, err
	}

	orderID := aggregate.ID()
	mirror, err := transaction.NewTransaction(kernel.NewUUID(), &orderID, aggregate.Status(), transaction.Snapshot{
		OrderNumber: transaction.OrderNumberFor(aggregate.ID()),
		Vehicle:     aggregate.Details().VehicleInfo,
		Destination: aggregate.Details().DropoffLocation,
		Schedule:    aggregate.Schedule(),
	})
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.addOrder(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	result := CreateOrderResult{
		OrderID:       aggregate.ID(),
		TransactionID: mirror.ID(),
		OrderNumber:   mirror.Snapshot().OrderNumber,
		Status:        aggregate.Status(),
	}

	if err = h.transactions.Add(ctx, mirror); err != nil {
		return result, errs.NewLocalSyncError(aggregate.ID().String(), mirror.ID().String(), err)
	}

	return result, nil
}

func (h CreateOrderCommandHandler) addOrder(ctx context.Context, aggregate *order.Order) error {
	id := aggregate.ID().String()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewRemoteWriteError(id, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return errs.NewRemoteWriteError(id, err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewRemoteWriteError(id, err)
	}

	return nil
}
