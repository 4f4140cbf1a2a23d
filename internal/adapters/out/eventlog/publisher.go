// Package eventlog is the EventPublisher used when no broker is configured:
// every outbox message is written to the structured log instead.
package eventlog

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/outbox"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "event_log")}
}

func (p *Publisher) Publish(ctx context.Context, msg *outbox.Message) error {
	p.logger.InfoContext(ctx, "Order changed",
		"messageId", msg.ID().String(),
		"event", msg.Name(),
		"key", msg.AggregateKey(),
		"payload", string(msg.Payload()),
	)
	return nil
}
