package memory

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrTransactionNotStarted     = errors.New("transaction not started")
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
)

type stagedChange struct {
	aggregate *order.Order
	isNew     bool
}

// UnitOfWork stages writes and applies them under the store's write lock on
// Commit. Reads inside the unit of work see its own staged writes.
type UnitOfWork struct {
	store    *Store
	active   bool
	staged   map[string]stagedChange
	sequence []string
	repo     *orderRepository
}

func stageKey(c order.Collection, id kernel.OrderID) string {
	return order.LockKey(c, id)
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return ErrTransactionAlreadyStarted
	}
	u.active = true
	u.staged = make(map[string]stagedChange)
	u.sequence = nil
	u.repo = &orderRepository{uow: u}
	return nil
}

// Commit re-checks every staged write against the current store state, then
// applies all of them and appends one outbox message per aggregate. Either
// every change becomes visible or none does.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrTransactionNotStarted
	}

	messages := make([]*outbox.Message, 0, len(u.sequence))
	for _, key := range u.sequence {
		msg, err := outbox.NewOrderChangedMessage(u.staged[key].aggregate)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range u.sequence {
		change := u.staged[key]
		o := change.aggregate
		data, err := s.collection(o.Collection())
		if err != nil {
			return err
		}
		_, exists := data.records[o.ID().String()]
		if change.isNew && exists {
			return errs.NewObjectAlreadyExistsError("orderId", o.ID().String())
		}
		if !change.isNew && !exists {
			return errs.NewObjectNotFoundError("orderId", o.ID().String())
		}
	}

	for _, key := range u.sequence {
		change := u.staged[key]
		o := change.aggregate
		data := s.collections[o.Collection()]
		if change.isNew {
			data.keys = append(data.keys, o.ID().String())
		}
		data.records[o.ID().String()] = o.Clone()
	}
	s.outbox = append(s.outbox, messages...)

	u.reset()
	return nil
}

// Rollback discards staged writes. It is a no-op without an active transaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.reset()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	if u.repo == nil {
		u.repo = &orderRepository{uow: u}
	}
	return u.repo
}

func (u *UnitOfWork) reset() {
	u.active = false
	u.staged = nil
	u.sequence = nil
}

func (u *UnitOfWork) stage(o *order.Order, isNew bool) error {
	if !u.active {
		return ErrTransactionNotStarted
	}
	key := stageKey(o.Collection(), o.ID())
	if prev, ok := u.staged[key]; ok {
		isNew = prev.isNew
	} else {
		u.sequence = append(u.sequence, key)
	}
	u.staged[key] = stagedChange{aggregate: o.Clone(), isNew: isNew}
	return nil
}

func (u *UnitOfWork) lookupStaged(c order.Collection, id kernel.OrderID) (*order.Order, bool) {
	change, ok := u.staged[stageKey(c, id)]
	if !ok {
		return nil, false
	}
	return change.aggregate, true
}
