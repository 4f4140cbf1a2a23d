package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
)

// PublishOutboxCommandHandler relays pending outbox messages to the broker,
// oldest first, acknowledging each one after it was published. A failed
// publish stops the run so ordering per order is kept; the message is retried
// by the next run.
type PublishOutboxCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
}

func NewPublishOutboxCommandHandler(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		outbox:    outbox,
		publisher: publisher,
	}
}

// Handle returns how many messages were published.
func (h PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.outbox.GetUnprocessed(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, msg := range messages {
		if err = ctx.Err(); err != nil {
			return published, err
		}
		if err = h.publisher.Publish(ctx, msg); err != nil {
			return published, fmt.Errorf("publish message %s: %w", msg.ID(), err)
		}
		if err = h.outbox.MarkProcessed(ctx, msg, time.Now().UTC()); err != nil {
			return published, errors.Join(fmt.Errorf("acknowledge message %s", msg.ID()), err)
		}
		published++
	}

	return published, nil
}
