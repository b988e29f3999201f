// Package jobs runs the periodic maintenance commands of the valet service
// on github.com/robfig/cron/v3 schedules with seconds precision.
//
// # Available Jobs
//
//  1. ScheduledOrderActivationJob advances Scheduled orders whose pickup slot
//     is due into the active flow.
//  2. TransactionReconciliationJob re-syncs mirror transactions whose status
//     drifted from the remote order, typically after a LocalSyncError.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Schedules{
//		Activation:     "0 * * * * *",
//		Reconciliation: "*/30 * * * * *",
//	}, activateHandler, reconcileHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the job keeps its schedule. A job that fails to
// start stops every job started before it.
package jobs
