// Package kafka feeds orders placed upstream into the fulfillment core.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/tracing"

	"github.com/cenkalti/backoff/v4"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/trace"
)

// OrderPlaced is the value of an order-placed record.
type OrderPlaced struct {
	OrderID       string           `json:"orderId"`
	PaymentStatus string           `json:"paymentStatus"`
	OrderType     string           `json:"orderType"`
	OrderedAt     time.Time        `json:"orderedAt"`
	LineItems     []PlacedLineItem `json:"lineItems"`
}

type PlacedLineItem struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type consumerClient interface {
	PollFetches(ctx context.Context) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
}

type orderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

// OrderPlacedConsumer creates an order for every order-placed record.
// Redelivered records are recognized by their order id and skipped; records
// that can never become an order are logged and dropped. Any other failure is
// retried with exponential backoff, holding up the rest of the poll, and the
// record's offset is committed only once it has been handled.
type OrderPlacedConsumer struct {
	client     consumerClient
	handler    orderCreator
	logger     *slog.Logger
	newBackOff func() backoff.BackOff
}

func NewOrderPlacedConsumer(client consumerClient, handler orderCreator, logger *slog.Logger) *OrderPlacedConsumer {
	return &OrderPlacedConsumer{
		client:     client,
		handler:    handler,
		logger:     logger.With("component", "order_placed_consumer"),
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// NewConsumerClient joins group and subscribes to topic. Offsets are
// committed by OrderPlacedConsumer, never automatically.
func NewConsumerClient(brokers []string, group, topic string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("init kafka consumer: %w", err)
	}
	return client, nil
}

// Run polls until ctx is cancelled or the client is closed.
func (c *OrderPlacedConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Order placed consumer started")
	for {
		fetches := c.client.PollFetches(ctx)
		if ctx.Err() != nil {
			c.logger.InfoContext(context.Background(), "Order placed consumer stopped")
			return ctx.Err()
		}
		if fetches.IsClientClosed() {
			c.logger.InfoContext(ctx, "Order placed consumer stopped")
			return nil
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "Fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		handled := make([]*kgo.Record, 0, fetches.NumRecords())
		var err error
		for iter := fetches.RecordIter(); !iter.Done() && err == nil; {
			record := iter.Next()
			if err = c.consume(ctx, record); err == nil {
				handled = append(handled, record)
			}
		}

		c.commit(context.WithoutCancel(ctx), handled)
		if err != nil {
			c.logger.InfoContext(context.Background(), "Order placed consumer stopped", "error", err)
			return err
		}
	}
}

func (c *OrderPlacedConsumer) commit(ctx context.Context, records []*kgo.Record) {
	if len(records) == 0 {
		return
	}
	if err := c.client.CommitRecords(ctx, records...); err != nil {
		c.logger.ErrorContext(ctx, "Offset commit failed, records will be redelivered",
			"records", len(records), "error", err)
	}
}

// consume handles one record, retrying transient failures until they pass
// or ctx ends. It returns an error only when ctx ended first.
func (c *OrderPlacedConsumer) consume(ctx context.Context, record *kgo.Record) error {
	links := tracing.ExtractKafkaLinks(ctx, record.Headers)
	ctx, span := tracing.Start(ctx, "kafka.consume order-placed",
		trace.WithSpanKind(trace.SpanKindConsumer), trace.WithLinks(links...))
	defer span.End()

	var created *order.Order
	attempt := func() error {
		var err error
		created, err = c.Process(ctx, record.Value)
		if err == nil || errors.Is(err, errs.ErrObjectAlreadyExists) || errs.IsValidation(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "Order creation failed, retrying",
			"offset", record.Offset, "retryIn", wait, "error", err)
	}

	err := backoff.RetryNotify(attempt, backoff.WithContext(c.newBackOff(), ctx), notify)
	switch {
	case err == nil:
		c.logger.InfoContext(ctx, "Order created", "orderId", created.ID().String())
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		c.logger.InfoContext(ctx, "Order already exists, skipping", "offset", record.Offset, "error", err)
	case errs.IsValidation(err):
		c.logger.WarnContext(ctx, "Dropping invalid order-placed record", "offset", record.Offset, "error", err)
	default:
		return err
	}
	return nil
}

// Process turns one record value into an order.
func (c *OrderPlacedConsumer) Process(ctx context.Context, value []byte) (*order.Order, error) {
	var event OrderPlaced
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderPlaced", err)
	}

	items := make([]commands.LineItemInput, 0, len(event.LineItems))
	for _, item := range event.LineItems {
		items = append(items, commands.LineItemInput{SizeLabel: item.Size, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(event.OrderID, event.PaymentStatus, event.OrderType, event.OrderedAt, items)
	if err != nil {
		return nil, err
	}
	return c.handler.Handle(ctx, cmd)
}
