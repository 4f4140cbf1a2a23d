package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrFileReturnCommandIsNotConstructed = errors.New(
	"FileReturnCommand must be created via NewFileReturnCommand constructor",
)

// FileReturnCommand opens a return request for a regular order.
type FileReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	reason  string

	guard guard.ConstructorGuard
}

func NewFileReturnCommand(orderID string, reason string) (FileReturnCommand, error) {
	cmd := FileReturnCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return FileReturnCommand{}, err
	}

	return cmd, nil
}

func (c FileReturnCommand) Validate() error {
	return c.guard.Validate(ErrFileReturnCommandIsNotConstructed)
}

func (c FileReturnCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c FileReturnCommand) Reason() string {
	return c.reason
}

func (c *FileReturnCommand) setOrderID(orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *FileReturnCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
