package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// SetStatusCommandHandler applies status changes.
//
// Errors:
//   - errs.ObjectNotFoundError when the record does not exist; no record is created
//   - errs.StatusIsInvalidError when the label is unknown or not legal for the collection
//
// On error the stored record is unchanged.
type SetStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
}

// NewSetStatusCommandHandler creates a handler for status changes.
func NewSetStatusCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

// Handle applies the status and returns the updated record.
func (h SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.locker, cmd.target, func(o *order.Order, now time.Time) error {
		status, err := order.ParseStatus(cmd.NewStatus())
		if err != nil {
			return err
		}
		return o.SetStatus(status, now)
	})
}
