// Package jobs provides the cron-based background tasks of the workflow
// engine.
package jobs

import (
	"context"

	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// QueueBoardRefreshJob keeps the redis queue boards warm. Every few seconds
// it re-reads each location's sorted queue and overwrites the cached board,
// so dashboard polling is served from the cache even between mutations.
type QueueBoardRefreshJob struct {
	locationRepo ports.LocationRepository
	queueHandler queries.GetLocationQueueQueryHandler
	cron         *cron.Cron
	log          *zap.Logger
}

// NewQueueBoardRefreshJob creates the refresh job. It reads the location
// list on every tick, so newly added locations are picked up without a
// restart.
func NewQueueBoardRefreshJob(
	locationRepo ports.LocationRepository,
	queueHandler queries.GetLocationQueueQueryHandler,
	log *zap.Logger,
) *QueueBoardRefreshJob {
	return &QueueBoardRefreshJob{
		locationRepo: locationRepo,
		queueHandler: queueHandler,
		cron:         cron.New(cron.WithSeconds()),
		log:          log.With(zap.String("component", "queue_board_refresh_job")),
	}
}

// Start schedules the refresh to run every five seconds.
func (j *QueueBoardRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		locations, err := j.locationRepo.GetAll(ctx)
		if err != nil {
			j.log.Error("failed to list locations", zap.Error(err))
			return
		}

		for _, loc := range locations {
			if err := j.queueHandler.Refresh(ctx, loc.ID()); err != nil {
				j.log.Error("failed to refresh queue board",
					zap.String("locationId", loc.ID().String()),
					zap.String("location", loc.Name()),
					zap.Error(err))
			}
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("queue board refresh job started")
	return nil
}

// Stop stops the refresh job.
func (j *QueueBoardRefreshJob) Stop() {
	j.cron.Stop()
	j.log.Info("queue board refresh job stopped")
}
