package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// AllotVendorCommandHandler records vendor decisions. Status and delivery
// status are left as they are.
type AllotVendorCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
}

func NewAllotVendorCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) AllotVendorCommandHandler {
	return AllotVendorCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

// Handle returns errs.ObjectNotFoundError for unknown records and
// errs.ValueIsRequiredError for a blank vendor name.
func (h AllotVendorCommandHandler) Handle(ctx context.Context, cmd AllotVendorCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.locker, cmd.target, func(o *order.Order, now time.Time) error {
		return o.AllotVendor(cmd.Decision(), cmd.VendorName(), now)
	})
}
