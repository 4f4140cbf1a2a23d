package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// target addresses one existing record.
type target struct {
	collection order.Collection
	orderID    kernel.OrderID
}

func newTarget(collection order.Collection, orderID string) (target, error) {
	id, idErr := kernel.NewOrderID(orderID)
	if err := errors.Join(collection.Validate(), idErr); err != nil {
		return target{}, err
	}
	return target{collection: collection, orderID: id}, nil
}

// Collection returns the collection the record lives in.
func (t target) Collection() order.Collection {
	return t.collection
}

// OrderID returns the record's identifier.
func (t target) OrderID() kernel.OrderID {
	return t.orderID
}

// mutateOrder runs change against a freshly loaded copy of the target while
// holding its lock and persists the result in one unit of work. Nothing is
// stored when change or any later step fails.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	t target,
	change func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	unlock := locker.Lock(order.LockKey(t.collection, t.orderID))
	defer unlock()

	return mutateLocked(ctx, uowFactory, t, change)
}

// mutateLocked is mutateOrder for callers already holding the target's lock.
func mutateLocked(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	t target,
	change func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, t.collection, t.orderID)
	if err != nil {
		return nil, err
	}

	if err = change(o, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
