package cmd

import (
	"valet/internal/adapters/in/http"
	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/ports"
	"valet/internal/jobs"

	"go.uber.org/zap"
)

// CompositionRoot wires the use cases to whichever stores the process was
// started with.
type CompositionRoot struct {
	config       Config
	uowFactory   ports.UnitOfWorkFactory
	transactions ports.TransactionRepository
	notifier     ports.StatusChangeNotifier
	logger       *zap.Logger
}

func NewCompositionRoot(
	config Config,
	uowFactory ports.UnitOfWorkFactory,
	transactions ports.TransactionRepository,
	notifier ports.StatusChangeNotifier,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:       config,
		uowFactory:   uowFactory,
		transactions: transactions,
		notifier:     notifier,
		logger:       logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSyncTransactionStatusCommandHandler() commands.SyncTransactionStatusCommandHandler {
	return commands.NewSyncTransactionStatusCommandHandler(c.transactions)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.transactions)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(
		c.orderUoWFactory(),
		c.CreateSyncTransactionStatusCommandHandler(),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.orderUoWFactory(),
		c.CreateSyncTransactionStatusCommandHandler(),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateActivateScheduledOrdersCommandHandler() commands.ActivateScheduledOrdersCommandHandler {
	return commands.NewActivateScheduledOrdersCommandHandler(
		c.orderUoWFactory(),
		c.CreateAdvanceOrderCommandHandler(),
	)
}

func (c *CompositionRoot) CreateReconcileTransactionsCommandHandler() commands.ReconcileTransactionsCommandHandler {
	return commands.NewReconcileTransactionsCommandHandler(
		c.orderUoWFactory(),
		c.transactions,
		c.CreateSyncTransactionStatusCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetTransactionsQueryHandler() queries.GetTransactionsQueryHandler {
	return queries.NewGetTransactionsQueryHandler(c.transactions)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:    c.CreateAdvanceOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		AssignDriver:    c.CreateAssignDriverCommandHandler(),
		RateOrder:       c.CreateRateOrderCommandHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
		GetTransactions: c.CreateGetTransactionsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.Schedules{
			Activation:     c.config.ActivationSchedule,
			Reconciliation: c.config.ReconciliationSchedule,
		},
		c.CreateActivateScheduledOrdersCommandHandler(),
		c.CreateReconcileTransactionsCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
