package jobs

import (
	"fmt"

	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/ports"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	queueBoardRefreshJob *QueueBoardRefreshJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	locationRepo ports.LocationRepository,
	queueHandler queries.GetLocationQueueQueryHandler,
	log *zap.Logger,
) *JobManager {
	return &JobManager{
		queueBoardRefreshJob: NewQueueBoardRefreshJob(locationRepo, queueHandler, log),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.queueBoardRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue board refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueBoardRefreshJob.Stop()
}
