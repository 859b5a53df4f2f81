// Package jobs provides scheduled background tasks for the order engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. OrderGroupingJob - Promotes scheduled orders whose delay elapsed and
// runs the grouping pipeline over the recent ungrouped backlog.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the grouping job
//	jobManager := jobs.NewJobManager(groupingJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The grouping job takes a six-field cron expression; the default
// "0 * * * * *" runs it once a minute. A tick that outlives the interval
// is not overlapped: the next tick is skipped and the backlog waits for
// the following run.
//
// # Error Handling
//
// - A failed promotion sweep is logged and grouping still runs
// - A failed grouping run is logged; its candidates return on the next tick
// - Start/stop are idempotent through JobManager
package jobs
