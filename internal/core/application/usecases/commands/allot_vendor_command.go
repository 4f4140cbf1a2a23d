package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAllotVendorCommandIsNotConstructed = errors.New(
	"AllotVendorCommand must be created via NewAllotVendorCommand constructor",
)

// AllotVendorCommand records a vendor decision. vendorName is optional and
// ignored on a negative decision.
type AllotVendorCommand struct { //nolint:recvcheck //using for validation
	target
	decision   bool
	vendorName *string

	guard guard.ConstructorGuard
}

func NewAllotVendorCommand(
	collection order.Collection,
	orderID string,
	decision bool,
	vendorName *string,
) (AllotVendorCommand, error) {
	t, err := newTarget(collection, orderID)
	if err != nil {
		return AllotVendorCommand{}, err
	}

	cmd := AllotVendorCommand{target: t, decision: decision, guard: guard.NewConstructorGuard()}
	if decision && vendorName != nil {
		name := *vendorName
		cmd.vendorName = &name
	}
	return cmd, nil
}

func (c AllotVendorCommand) Validate() error {
	return c.guard.Validate(ErrAllotVendorCommandIsNotConstructed)
}

func (c AllotVendorCommand) Decision() bool {
	return c.decision
}

func (c AllotVendorCommand) VendorName() *string {
	if c.vendorName == nil {
		return nil
	}
	name := *c.vendorName
	return &name
}
