// Package kafka publishes outbox messages to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EventNameHeader carries the outbox message name on every record.
const EventNameHeader = "event-name"

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher implements ports.EventPublisher. Records are keyed by the
// aggregate key, so changes of one order stay in one partition and keep
// their relative order.
type Publisher struct {
	client producer
	topic  string
}

func NewPublisher(client producer, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// NewProducerClient connects a client suited for Publisher.
func NewProducerClient(brokers []string, clientID string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("init kafka producer: %w", err)
	}
	return client, nil
}

func (p *Publisher) Publish(ctx context.Context, msg *outbox.Message) error {
	ctx, span := tracing.Start(ctx, "kafka.publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination.name", p.topic),
		attribute.String("messaging.message.id", msg.ID().String()),
	)

	headers := append(tracing.InjectKafkaHeaders(ctx), kgo.RecordHeader{Key: EventNameHeader, Value: []byte(msg.Name())})
	record := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(msg.AggregateKey()),
		Value:     msg.Payload(),
		Headers:   headers,
		Timestamp: msg.OccurredAt(),
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce failed")
		return fmt.Errorf("publish %s to %s: %w", msg.ID(), p.topic, err)
	}
	return nil
}
