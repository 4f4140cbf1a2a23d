package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetStatusCommandIsNotConstructed = errors.New(
	"SetStatusCommand must be created via NewSetStatusCommand constructor",
)

// SetStatusCommand moves an order or return request to a new status.
//
// The status label is kept raw and resolved by the handler after the record
// has been found, so an unknown id reports not found whatever the label.
//
// Example:
//
//	cmd, err := NewSetStatusCommand(order.Orders, "ORD-1", "Delivered")
//	updated, err := handler.Handle(ctx, cmd)
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	target
	newStatus string

	guard guard.ConstructorGuard
}

// NewSetStatusCommand validates the record address.
func NewSetStatusCommand(collection order.Collection, orderID string, newStatus string) (SetStatusCommand, error) {
	t, err := newTarget(collection, orderID)
	if err != nil {
		return SetStatusCommand{}, err
	}

	return SetStatusCommand{
		target:    t,
		newStatus: strings.TrimSpace(newStatus),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

// NewStatus returns the requested status label as given.
func (c SetStatusCommand) NewStatus() string {
	return c.newStatus
}
