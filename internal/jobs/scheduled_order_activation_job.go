package jobs

import (
	"context"
	"errors"
	"time"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type scheduledOrderActivator interface {
	Handle(
		ctx context.Context,
		command commands.ActivateScheduledOrdersCommand,
	) (commands.ActivateScheduledOrdersResult, error)
}

// ScheduledOrderActivationJob moves due Scheduled orders into FindingDriver.
type ScheduledOrderActivationJob struct {
	handler  scheduledOrderActivator
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	job      cron.Job
	logger   *zap.Logger
}

func NewScheduledOrderActivationJob(
	schedule string,
	handler scheduledOrderActivator,
	logger *zap.Logger,
) *ScheduledOrderActivationJob {
	j := &ScheduledOrderActivationJob{
		handler:  handler,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "scheduled_order_activation_job")),
	}
	j.job = skipIfStillRunning(j.run, j.logger)
	return j
}

func (j *ScheduledOrderActivationJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j.job); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Scheduled order activation job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *ScheduledOrderActivationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Scheduled order activation job stopped")
}

func (j *ScheduledOrderActivationJob) run() {
	ctx := context.Background()

	res, err := j.handler.Handle(ctx, commands.NewActivateScheduledOrdersCommand(j.now()))
	if len(res.Activated) > 0 {
		j.logger.Info("Activated scheduled orders", zap.Int("count", len(res.Activated)))
	}

	switch {
	case err == nil:
	case errors.Is(err, errs.ErrLocalSync) && !errors.Is(err, errs.ErrRemoteWrite):
		j.logger.Warn("Activated orders could not be mirrored; reconciliation will retry", zap.Error(err))
	default:
		j.logger.Error("Scheduled order activation job failed", zap.Error(err))
	}
}
