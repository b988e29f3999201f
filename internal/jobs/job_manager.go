package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Schedules holds the cron expressions (with seconds) of every job.
type Schedules struct {
	Activation     string
	Reconciliation string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	activationJob     *ScheduledOrderActivationJob
	reconciliationJob *TransactionReconciliationJob
}

func NewJobManager(
	schedules Schedules,
	activateHandler scheduledOrderActivator,
	reconcileHandler transactionReconciler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		activationJob:     NewScheduledOrderActivationJob(schedules.Activation, activateHandler, logger),
		reconciliationJob: NewTransactionReconciliationJob(schedules.Reconciliation, reconcileHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.activationJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled order activation job: %w", err)
	}

	if err := jm.reconciliationJob.Start(); err != nil {
		jm.activationJob.Stop()
		return fmt.Errorf("failed to start transaction reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running invocations to finish.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
	jm.activationJob.Stop()
}

// skipIfStillRunning wraps run so that a tick arriving while the previous run
// of the same job is still in progress is dropped.
func skipIfStillRunning(run func(), logger *zap.Logger) cron.Job {
	chain := cron.NewChain(cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(logger))))
	return chain.Then(cron.FuncJob(run))
}
