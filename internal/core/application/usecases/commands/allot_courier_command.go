package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAllotCourierCommandIsNotConstructed = errors.New(
	"AllotCourierCommand must be created via NewAllotCourierCommand constructor",
)

// AllotCourierCommand records a courier decision. The tracking number of a
// positive decision is issued by the handler.
type AllotCourierCommand struct { //nolint:recvcheck //using for validation
	target
	decision bool

	guard guard.ConstructorGuard
}

func NewAllotCourierCommand(collection order.Collection, orderID string, decision bool) (AllotCourierCommand, error) {
	t, err := newTarget(collection, orderID)
	if err != nil {
		return AllotCourierCommand{}, err
	}
	return AllotCourierCommand{target: t, decision: decision, guard: guard.NewConstructorGuard()}, nil
}

func (c AllotCourierCommand) Validate() error {
	return c.guard.Validate(ErrAllotCourierCommandIsNotConstructed)
}

func (c AllotCourierCommand) Decision() bool {
	return c.decision
}
