package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"amigos/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderGroupingJob runs the grouping pipeline on a schedule. Each tick
// first promotes scheduled orders whose delay elapsed, then scans the
// recent ungrouped backlog and forms duos and trios out of it.
//
// A tick that outlives the schedule interval must not overlap the next
// one: the mutex is probed with TryLock and a busy tick is skipped, the
// backlog simply waits for the following run.
type OrderGroupingJob struct {
	promoteHandler commands.PromoteScheduledOrdersCommandHandler
	groupHandler   commands.GroupOrdersCommandHandler
	schedule       string
	lookback       time.Duration
	limit          int
	cron           *cron.Cron
	running        sync.Mutex
	logger         *slog.Logger
}

// NewOrderGroupingJob creates a new grouping job. schedule is a six-field
// cron expression; lookback and limit bound the candidate scan of each run.
func NewOrderGroupingJob(
	promoteHandler commands.PromoteScheduledOrdersCommandHandler,
	groupHandler commands.GroupOrdersCommandHandler,
	schedule string,
	lookback time.Duration,
	limit int,
	logger *slog.Logger,
) *OrderGroupingJob {
	return &OrderGroupingJob{
		promoteHandler: promoteHandler,
		groupHandler:   groupHandler,
		schedule:       schedule,
		lookback:       lookback,
		limit:          limit,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "order_grouping_job"),
	}
}

// Start schedules the job. Returns an error if the cron expression does
// not parse.
func (j *OrderGroupingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order grouping job started",
		"schedule", j.schedule,
		"lookback", j.lookback.String(),
		"limit", j.limit)
	return nil
}

// Stop stops the job. A tick already in flight finishes.
func (j *OrderGroupingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order grouping job stopped")
}

func (j *OrderGroupingJob) runOnce() {
	if !j.running.TryLock() {
		j.logger.InfoContext(context.Background(), "Previous grouping run still in flight, skipping tick")
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()

	promoteCmd, err := commands.NewPromoteScheduledOrdersCommand()
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build promotion command", "error", err)
		return
	}
	promoted, err := j.promoteHandler.Handle(ctx, promoteCmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled order promotion failed", "error", err)
		// Grouping still runs: already-pending orders do not depend on
		// the promotion sweep.
	} else if promoted > 0 {
		j.logger.InfoContext(ctx, "Promoted scheduled orders", "count", promoted)
	}

	groupCmd, err := commands.NewGroupOrdersCommand(j.lookback, j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build grouping command", "error", err)
		return
	}
	result, err := j.groupHandler.Handle(ctx, groupCmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Grouping run failed", "error", err)
		return
	}

	if result.Grouped > 0 {
		j.logger.InfoContext(ctx, "Grouping run formed groups",
			"attempted", result.Attempted,
			"grouped", result.Grouped)
	}
}
