package jobs

import (
	"context"

	"valet/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type transactionReconciler interface {
	Handle(
		ctx context.Context,
		command commands.ReconcileTransactionsCommand,
	) (commands.ReconcileTransactionsResult, error)
}

// TransactionReconciliationJob re-syncs mirror transactions that drifted
// from their remote order.
type TransactionReconciliationJob struct {
	handler  transactionReconciler
	schedule string
	cron     *cron.Cron
	job      cron.Job
	logger   *zap.Logger
}

func NewTransactionReconciliationJob(
	schedule string,
	handler transactionReconciler,
	logger *zap.Logger,
) *TransactionReconciliationJob {
	j := &TransactionReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "transaction_reconciliation_job")),
	}
	j.job = skipIfStillRunning(j.run, j.logger)
	return j
}

func (j *TransactionReconciliationJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j.job); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Transaction reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *TransactionReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Transaction reconciliation job stopped")
}

func (j *TransactionReconciliationJob) run() {
	ctx := context.Background()

	res, err := j.handler.Handle(ctx, commands.NewReconcileTransactionsCommand())
	if err != nil {
		j.logger.Error("Transaction reconciliation job failed",
			zap.Int("checked", res.Checked),
			zap.Int("resynced", res.Resynced),
			zap.Error(err),
		)
		return
	}

	if res.Resynced > 0 {
		j.logger.Info("Reconciled transactions",
			zap.Int("checked", res.Checked),
			zap.Int("resynced", res.Resynced),
			zap.Int("skipped", res.Skipped),
		)
	}
}
