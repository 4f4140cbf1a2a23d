package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/outbox"
)

// OutboxRepository reads and acknowledges stored outbox messages.
type OutboxRepository interface {
	// GetUnprocessed returns at most limit pending messages, oldest first.
	GetUnprocessed(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkProcessed acknowledges a published message.
	MarkProcessed(ctx context.Context, msg *outbox.Message, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg *outbox.Message) error
}
