package memory

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// orderRepository is the transactional view of the store handed out by a
// UnitOfWork.
type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	_, err := r.Get(ctx, aggregate.Collection(), aggregate.ID())
	switch {
	case err == nil:
		return errs.NewObjectAlreadyExistsError("orderId", aggregate.ID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}
	return r.uow.stage(aggregate, true)
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.Collection(), aggregate.ID()); err != nil {
		return err
	}
	return r.uow.stage(aggregate, false)
}

func (r *orderRepository) Get(ctx context.Context, collection order.Collection, id kernel.OrderID) (*order.Order, error) {
	if o, ok := r.uow.lookupStaged(collection, id); ok {
		return o.Clone(), nil
	}
	return r.uow.store.Get(ctx, collection, id)
}

func (r *orderRepository) All(ctx context.Context, collection order.Collection) ([]*order.Order, error) {
	f, _ := order.NewFilter("", "", nil)
	return r.Find(ctx, collection, f)
}

// Find merges staged writes into the committed view: staged updates replace
// their committed record in place and staged inserts follow at the end.
func (r *orderRepository) Find(ctx context.Context, collection order.Collection, filter order.Filter) ([]*order.Order, error) {
	committed, err := r.uow.store.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(committed))
	merged := make([]*order.Order, 0, len(committed))
	for _, o := range committed {
		seen[o.ID().String()] = true
		if staged, ok := r.uow.lookupStaged(collection, o.ID()); ok {
			o = staged.Clone()
		}
		merged = append(merged, o)
	}
	for _, key := range r.uow.sequence {
		change := r.uow.staged[key]
		if change.aggregate.Collection() == collection && !seen[change.aggregate.ID().String()] {
			merged = append(merged, change.aggregate.Clone())
		}
	}

	return filter.Apply(merged), nil
}
