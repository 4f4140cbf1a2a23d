package tracing

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// InjectKafkaHeaders returns the trace context of ctx as record headers.
func InjectKafkaHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]kgo.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, kgo.RecordHeader{Key: key, Value: []byte(carrier.Get(key))})
	}
	return headers
}

// ExtractKafkaLinks turns the producer's trace context into a span link, so
// the consumer span starts its own trace but stays connected to the sender.
func ExtractKafkaLinks(ctx context.Context, headers []kgo.RecordHeader) []trace.Link {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		carrier.Set(h.Key, string(h.Value))
	}

	remote := trace.SpanContextFromContext(otel.GetTextMapPropagator().Extract(ctx, carrier))
	if !remote.IsValid() {
		return nil
	}

	return []trace.Link{{
		SpanContext: remote,
		Attributes: []attribute.KeyValue{
			attribute.String("link.type", "async"),
			attribute.String("link.protocol", "kafka"),
		},
	}}
}
