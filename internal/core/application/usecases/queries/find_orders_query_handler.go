package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// FindOrdersQueryHandler runs order queries against the store's read side.
// Results keep insertion order; the store is never modified.
type FindOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewFindOrdersQueryHandler(reader ports.OrderReader) FindOrdersQueryHandler {
	return FindOrdersQueryHandler{reader: reader}
}

// Handle returns the matching records, never nil.
func (h FindOrdersQueryHandler) Handle(ctx context.Context, query FindOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	if query.Filter().IsEmpty() {
		orders, err = h.reader.All(ctx, query.Collection())
	} else {
		orders, err = h.reader.Find(ctx, query.Collection(), query.Filter())
	}
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = make([]*order.Order, 0)
	}
	return orders, nil
}
