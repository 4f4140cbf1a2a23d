package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ReturnFiler is a domain service that opens return requests.
//
// Business rules:
//   - The source must be a constructed order of the Orders collection
//   - At most one return request exists per order identifier
//   - The new request starts ReturnRequested on both status axes
//
// Example usage:
//
//	filer := services.NewReturnFiler()
//	existing, _ := returns.Get(ctx, order.Returns, source.ID()) // nil when absent
//	ret, err := filer.File(source, existing, "wrong size", time.Now())
//	if errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // a return is already open for this order
//	}
type ReturnFiler struct{}

// NewReturnFiler creates a new ReturnFiler instance.
func NewReturnFiler() ReturnFiler {
	return ReturnFiler{}
}

// File builds the return request for source. existing is the return request
// already stored under the same identifier, or nil.
func (ReturnFiler) File(source *order.Order, existing *order.Order, reason string, now time.Time) (*order.Order, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewObjectAlreadyExistsError("return request", source.ID().String())
	}
	return order.NewReturnRequest(source, reason, now)
}
