// Package ports defines the contracts between the fulfillment core and its
// infrastructure: order storage, the outbox, tracking number issuance and
// event publication.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderReader is the read side of the order store. Implementations return
// detached copies; callers may not observe later writes through them.
type OrderReader interface {
	// Get retrieves one record of a collection.
	// Returns errs.ObjectNotFoundError when the collection has no such id.
	Get(ctx context.Context, collection order.Collection, id kernel.OrderID) (*order.Order, error)

	// All returns every record of a collection in insertion order.
	All(ctx context.Context, collection order.Collection) ([]*order.Order, error)

	// Find returns the records of a collection matching filter, in insertion
	// order. An empty filter behaves like All.
	Find(ctx context.Context, collection order.Collection, filter order.Filter) ([]*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
// Orders and return requests live in separate key spaces selected by the
// aggregate's collection.
type OrderRepository interface {
	OrderReader

	// Add persists a new record.
	// Returns errs.ObjectAlreadyExistsError when the id is taken in the collection.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces an existing record.
	// Returns errs.ObjectNotFoundError when the record does not exist.
	Update(ctx context.Context, aggregate *order.Order) error
}
