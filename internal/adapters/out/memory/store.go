// Package memory is the in-process order store. It keeps both collections and
// the outbox behind one RWMutex; readers get deep copies and writers go
// through a UnitOfWork whose changes are applied atomically on Commit.
package memory

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/pkg/errs"
)

type collectionData struct {
	keys    []string
	records map[string]*order.Order
}

func newCollectionData() *collectionData {
	return &collectionData{records: make(map[string]*order.Order)}
}

// Store holds orders, return requests and pending outbox messages.
type Store struct {
	mu          sync.RWMutex
	collections map[order.Collection]*collectionData
	outbox      []*outbox.Message
}

func NewStore() *Store {
	return &Store{
		collections: map[order.Collection]*collectionData{
			order.Orders:  newCollectionData(),
			order.Returns: newCollectionData(),
		},
	}
}

// Get returns a copy of one record.
func (s *Store) Get(_ context.Context, collection order.Collection, id kernel.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, err := s.lookup(collection, id)
	if err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

// All returns copies of a collection in insertion order.
func (s *Store) All(ctx context.Context, collection order.Collection) ([]*order.Order, error) {
	f, _ := order.NewFilter("", "", nil)
	return s.Find(ctx, collection, f)
}

// Find returns copies of the matching records in insertion order.
func (s *Store) Find(_ context.Context, collection order.Collection, filter order.Filter) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	out := make([]*order.Order, 0, len(data.keys))
	for _, key := range data.keys {
		o := data.records[key]
		if filter.Matches(o) {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

// GetUnprocessed returns the oldest pending outbox messages.
func (s *Store) GetUnprocessed(_ context.Context, limit int) ([]*outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*outbox.Message, 0, limit)
	for _, msg := range s.outbox {
		if len(out) == limit {
			break
		}
		if msg.ProcessedAt() == nil {
			out = append(out, msg)
		}
	}
	return out, nil
}

// MarkProcessed drops a published message from the outbox.
func (s *Store) MarkProcessed(_ context.Context, msg *outbox.Message, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, stored := range s.outbox {
		if stored.ID().IsEqual(msg.ID()) {
			msg.MarkProcessed(at)
			s.outbox = append(s.outbox[:i], s.outbox[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("outboxMessageId", msg.ID().String())
}

// Create starts a unit of work against the store.
func (s *Store) Create() *UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) collection(c order.Collection) (*collectionData, error) {
	data, ok := s.collections[c]
	if !ok {
		return nil, errs.NewValueIsInvalidError("collection")
	}
	return data, nil
}

func (s *Store) lookup(c order.Collection, id kernel.OrderID) (*order.Order, error) {
	data, err := s.collection(c)
	if err != nil {
		return nil, err
	}
	o, ok := data.records[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return o, nil
}
