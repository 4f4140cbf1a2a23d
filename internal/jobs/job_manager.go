package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager owns the background jobs of the service. On shutdown it stops
// the schedule and relays whatever the outbox still holds.
type JobManager struct {
	outboxRelay *OutboxRelayJob
	logger      *slog.Logger
}

func NewJobManager(
	publishOutboxHandler outboxPublisher,
	outboxSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelay: NewOutboxRelayJob(publishOutboxHandler, outboxSchedule, logger),
		logger:      logger.With("component", "job_manager"),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelay.Start(); err != nil {
		return fmt.Errorf("start outbox relay job: %w", err)
	}
	return nil
}

// StopAll waits for running jobs, then drains the outbox in full batches
// until a batch comes back short or ctx ends.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.outboxRelay.Stop()

	drained := 0
	for ctx.Err() == nil {
		published := jm.outboxRelay.RunOnce(ctx)
		drained += published
		if published < jm.outboxRelay.batchSize {
			break
		}
	}
	jm.logger.InfoContext(ctx, "Jobs stopped", "drained", drained)
}
