package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, c order.Collection, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) All(ctx context.Context, c order.Collection) ([]*order.Order, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, c order.Collection, f order.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, c, f)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(key string) func() {
	m.Called(key)
	return func() { m.MethodCalled("Unlock", key) }
}

type MockTrackingIDGenerator struct{ mock.Mock }

func (m *MockTrackingIDGenerator) Generate(ctx context.Context, o *order.Order) (kernel.TrackingID, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(kernel.TrackingID), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, msg *outbox.Message, at time.Time) error {
	args := m.Called(ctx, msg, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var placedAt = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func newPendingOrder(id string) *order.Order {
	o, err := order.NewOrder(kernel.MustOrderID(id), order.PaymentPaid, order.Prepaid, placedAt, nil)
	if err != nil {
		panic(err)
	}
	return o
}

// expectLock registers a lock/unlock pair for key.
func expectLock(l *MockLocker, key string) {
	l.On("Lock", key).Return().Once()
	l.On("Unlock", key).Return().Once()
}
