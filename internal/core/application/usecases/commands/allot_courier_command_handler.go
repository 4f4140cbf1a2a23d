package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AllotCourierCommandHandler hands orders to a courier or takes them back.
//
// A positive decision reads the order and asks the TrackingIDGenerator for a
// tracking number before any unit of work is opened, so a slow carrier never
// holds a transaction or a row lock. The per-order lock is held from the read
// to the commit. If the generator fails (errs.UpstreamError for remote
// carriers) the record is left unchanged.
//
// Example:
//
//	handler := NewAllotCourierCommandHandler(uowFactory, store, locker, couriergw.LocalGenerator{})
//	cmd, _ := NewAllotCourierCommand(order.Orders, "ORD-1", true)
//	shipped, err := handler.Handle(ctx, cmd)
//	// shipped.DeliveryStatus() == order.DeliveryShipped
type AllotCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	reader     ports.OrderReader
	locker     OrderLocker
	trackingID ports.TrackingIDGenerator
}

func NewAllotCourierCommandHandler(
	uowFactory OrderUoWFactory,
	reader ports.OrderReader,
	locker OrderLocker,
	trackingID ports.TrackingIDGenerator,
) AllotCourierCommandHandler {
	return AllotCourierCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
		locker:     locker,
		trackingID: trackingID,
	}
}

func (h AllotCourierCommandHandler) Handle(ctx context.Context, cmd AllotCourierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Decision() {
		return mutateOrder(ctx, h.uowFactory, h.locker, cmd.target, func(o *order.Order, now time.Time) error {
			return o.AllotCourier(false, nil, now)
		})
	}

	unlock := h.locker.Lock(order.LockKey(cmd.Collection(), cmd.OrderID()))
	defer unlock()

	current, err := h.reader.Get(ctx, cmd.Collection(), cmd.OrderID())
	if err != nil {
		return nil, err
	}
	id, err := h.trackingID.Generate(ctx, current)
	if err != nil {
		return nil, err
	}

	return mutateLocked(ctx, h.uowFactory, cmd.target, func(o *order.Order, now time.Time) error {
		return o.AllotCourier(true, &id, now)
	})
}
