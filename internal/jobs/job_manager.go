package jobs

import (
	"fmt"
	"sync"
)

// JobManager coordinates the application's scheduled jobs.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	groupingJob *OrderGroupingJob

	mu      sync.Mutex
	started bool
}

// NewJobManager creates a new job manager owning the grouping job.
func NewJobManager(groupingJob *OrderGroupingJob) *JobManager {
	return &JobManager{
		groupingJob: groupingJob,
	}
}

// StartAll starts all scheduled jobs. Calling it on an already started
// manager is a no-op.
func (jm *JobManager) StartAll() error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if jm.started {
		return nil
	}

	if err := jm.groupingJob.Start(); err != nil {
		return fmt.Errorf("failed to start order grouping job: %w", err)
	}

	jm.started = true
	return nil
}

// StopAll stops all scheduled jobs gracefully. Safe to call on a manager
// that never started.
func (jm *JobManager) StopAll() {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if !jm.started {
		return
	}

	jm.groupingJob.Stop()
	jm.started = false
}
