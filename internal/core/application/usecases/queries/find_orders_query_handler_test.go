package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, c order.Collection, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) All(ctx context.Context, c order.Collection) ([]*order.Order, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) Find(ctx context.Context, c order.Collection, f order.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, c, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func newOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustOrderID(id), order.PaymentPending, order.COD,
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return o
}

func TestNewFindOrdersQuery(t *testing.T) {
	r, _ := kernel.ParseDateRange("2024-03-01", "2024-03-31")

	q, err := queries.NewFindOrdersQuery(order.Returns, "Return Approved", "cod", &r)

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, order.Returns, q.Collection())
	assert.Equal(t, "returnapproved", q.Filter().StatusKey())
	assert.Equal(t, "cod", q.Filter().TypeKey())
	require.NotNil(t, q.Filter().DateRange())

	_, err = queries.NewFindOrdersQuery(order.UnknownCollection, "", "", &kernel.DateRange{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, kernel.ErrDateRangeIsNotConstructed)

	assert.ErrorIs(t, queries.FindOrdersQuery{}.Validate(), queries.ErrFindOrdersQueryIsNotConstructed)
}

func TestFindOrdersQueryHandler_Handle_NoFacetsReadsAll(t *testing.T) {
	ctx := t.Context()
	stored := []*order.Order{newOrder(t, "O1"), newOrder(t, "O2")}
	reader := new(MockOrderReader)
	reader.On("All", ctx, order.Orders).Return(stored, nil).Once()
	q, _ := queries.NewFindOrdersQuery(order.Orders, "", "", nil)

	got, err := queries.NewFindOrdersQueryHandler(reader).Handle(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, stored, got)
	reader.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindOrdersQueryHandler_Handle_PushesFilterDown(t *testing.T) {
	ctx := t.Context()
	q, _ := queries.NewFindOrdersQuery(order.Orders, "Processing", "", nil)
	reader := new(MockOrderReader)
	reader.On("Find", ctx, order.Orders, q.Filter()).Return(nil, nil).Once()

	got, err := queries.NewFindOrdersQueryHandler(reader).Handle(ctx, q)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	reader.AssertExpectations(t)
}

func TestFindOrdersQueryHandler_Handle_ReaderError(t *testing.T) {
	ctx := t.Context()
	q, _ := queries.NewFindOrdersQuery(order.Orders, "", "COD", nil)
	reader := new(MockOrderReader)
	reader.On("Find", ctx, order.Orders, q.Filter()).Return(nil, errors.New("db down")).Once()

	_, err := queries.NewFindOrdersQueryHandler(reader).Handle(ctx, q)

	require.EqualError(t, err, "db down")
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stored := newOrder(t, "O1")
	reader := new(MockOrderReader)
	reader.On("Get", ctx, order.Orders, kernel.MustOrderID("O1")).Return(stored, nil).Once()
	reader.On("Get", ctx, order.Orders, kernel.MustOrderID("O2")).
		Return(nil, errs.NewObjectNotFoundError("orderId", "O2")).Once()
	h := queries.NewGetOrderQueryHandler(reader)

	q, err := queries.NewGetOrderQuery(order.Orders, "O1")
	require.NoError(t, err)
	got, err := h.Handle(ctx, q)
	require.NoError(t, err)
	assert.Same(t, stored, got)

	q, _ = queries.NewGetOrderQuery(order.Orders, "O2")
	_, err = h.Handle(ctx, q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = queries.NewGetOrderQuery(order.Orders, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
