package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery looks up a single record.
type GetOrderQuery struct {
	collection order.Collection
	orderID    kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(collection order.Collection, orderID string) (GetOrderQuery, error) {
	id, idErr := kernel.NewOrderID(orderID)
	if err := errors.Join(collection.Validate(), idErr); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{collection: collection, orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Collection() order.Collection {
	return q.collection
}

func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}
