package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// TrackingIDGenerator issues the tracking number a positive courier
// allotment ships under. Remote implementations report carrier failures as
// errs.UpstreamError.
type TrackingIDGenerator interface {
	Generate(ctx context.Context, o *order.Order) (kernel.TrackingID, error)
}
