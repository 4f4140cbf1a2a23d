// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob publishes the order-changed messages that committed units of
// work left in the outbox, oldest first, at most commands.MaxOutboxBatch per
// run. Runs every five seconds unless OUTBOX_SCHEDULE says otherwise.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(publishOutboxHandler, cfg.OutboxSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Error Handling
//
// A failed publish stops the run; the message stays pending and the next run
// retries it, so delivery is at least once and in order per aggregate.
package jobs
