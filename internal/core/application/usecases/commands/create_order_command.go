package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput is a raw size/quantity pair as received from the placement system.
type LineItemInput struct {
	SizeLabel string
	Quantity  int
}

// CreateOrderCommand registers an order placed upstream.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("ORD-1", "Paid", "COD", time.Now(), []LineItemInput{{"M", 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.OrderID
	paymentStatus order.PaymentStatus
	orderType     order.Type
	orderedAt     time.Time
	lineItems     []order.LineItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand parses and validates every field, joining all
// validation errors.
func NewCreateOrderCommand(
	orderID string,
	paymentStatus string,
	orderType string,
	orderedAt time.Time,
	lineItems []LineItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentStatus(paymentStatus),
		cmd.setOrderType(orderType),
		cmd.setOrderedAt(orderedAt),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

func (c CreateOrderCommand) OrderedAt() time.Time {
	return c.orderedAt
}

func (c CreateOrderCommand) LineItems() []order.LineItem {
	out := make([]order.LineItem, len(c.lineItems))
	copy(out, c.lineItems)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentStatus(paymentStatus string) error {
	p, err := order.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return err
	}
	c.paymentStatus = p
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType string) error {
	t, err := order.ParseType(orderType)
	if err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *CreateOrderCommand) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderedAt")
	}
	c.orderedAt = orderedAt
	return nil
}

func (c *CreateOrderCommand) setLineItems(inputs []LineItemInput) error {
	items := make([]order.LineItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := order.NewLineItem(in.SizeLabel, in.Quantity)
		if err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
		items = append(items, item)
	}
	c.lineItems = items
	return nil
}
