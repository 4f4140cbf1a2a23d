// Package queries contains read-only operations over the order store.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrFindOrdersQueryIsNotConstructed = errors.New(
	"FindOrdersQuery must be created via NewFindOrdersQuery constructor",
)

// FindOrdersQuery narrows one collection by status, order type and order
// date. Every facet is optional.
//
// Example:
//
//	march, _ := kernel.ParseDateRange("2024-03-01", "2024-03-31")
//	query, err := NewFindOrdersQuery(order.Orders, "Processing", "", &march)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type FindOrdersQuery struct {
	collection order.Collection
	filter     order.Filter

	guard guard.ConstructorGuard
}

func NewFindOrdersQuery(
	collection order.Collection,
	status string,
	orderType string,
	dateRange *kernel.DateRange,
) (FindOrdersQuery, error) {
	filter, filterErr := order.NewFilter(status, orderType, dateRange)
	if err := errors.Join(collection.Validate(), filterErr); err != nil {
		return FindOrdersQuery{}, err
	}

	return FindOrdersQuery{
		collection: collection,
		filter:     filter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersQueryIsNotConstructed)
}

func (q FindOrdersQuery) Collection() order.Collection {
	return q.collection
}

func (q FindOrdersQuery) Filter() order.Filter {
	return q.filter
}
