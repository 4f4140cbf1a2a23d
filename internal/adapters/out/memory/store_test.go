package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
}

func (s *StoreTestSuite) newOrder(id string, typ order.Type, day int) *order.Order {
	o, err := order.NewOrder(kernel.MustOrderID(id), order.PaymentPaid, typ,
		time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC), nil)
	s.Require().NoError(err)
	return o
}

func (s *StoreTestSuite) add(orders ...*order.Order) {
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	for _, o := range orders {
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))
	}
	s.Require().NoError(uow.Commit(s.ctx))
}

func (s *StoreTestSuite) TestAddAndGet() {
	s.add(s.newOrder("O1", order.COD, 1))

	got, err := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))

	s.Require().NoError(err)
	s.Equal("O1", got.ID().String())
	_, err = s.store.Get(s.ctx, order.Returns, kernel.MustOrderID("O1"))
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *StoreTestSuite) TestAddDuplicate() {
	s.add(s.newOrder("O1", order.COD, 1))

	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	err := uow.OrderRepository().Add(s.ctx, s.newOrder("O1", order.Prepaid, 2))

	s.ErrorIs(err, errs.ErrObjectAlreadyExists)
	s.True(errs.IsValidation(err))
}

func (s *StoreTestSuite) TestCollectionsAreSeparateKeySpaces() {
	source := s.newOrder("O1", order.COD, 1)
	s.add(source)
	ret, err := order.NewReturnRequest(source, "torn", time.Now())
	s.Require().NoError(err)

	s.add(ret)

	orders, _ := s.store.All(s.ctx, order.Orders)
	returns, _ := s.store.All(s.ctx, order.Returns)
	s.Len(orders, 1)
	s.Len(returns, 1)
}

func (s *StoreTestSuite) TestUpdateMissing() {
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))

	err := uow.OrderRepository().Update(s.ctx, s.newOrder("ghost", order.COD, 1))

	s.ErrorIs(err, errs.ErrObjectNotFound)
	all, _ := s.store.All(s.ctx, order.Orders)
	s.Empty(all)
}

func (s *StoreTestSuite) TestWritesInvisibleUntilCommit() {
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("O1", order.COD, 1)))

	_, err := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.ErrorIs(err, errs.ErrObjectNotFound)
	inTx, err := uow.OrderRepository().Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Require().NoError(err)
	s.Equal("O1", inTx.ID().String())

	s.Require().NoError(uow.Commit(s.ctx))
	_, err = s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.NoError(err)
}

func (s *StoreTestSuite) TestRollbackDiscards() {
	s.add(s.newOrder("O1", order.COD, 1))
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	repo := uow.OrderRepository()
	o, err := repo.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Require().NoError(err)
	s.Require().NoError(o.SetStatus(order.Cancelled, time.Now()))
	s.Require().NoError(repo.Update(s.ctx, o))

	s.Require().NoError(uow.Rollback(s.ctx))

	stored, _ := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Equal(order.Pending, stored.Status())
	s.ErrorIs(uow.Commit(s.ctx), memory.ErrTransactionNotStarted)
}

func (s *StoreTestSuite) TestCommitRejectsConcurrentDuplicate() {
	first := s.store.Create()
	second := s.store.Create()
	s.Require().NoError(first.Begin(s.ctx))
	s.Require().NoError(second.Begin(s.ctx))
	s.Require().NoError(first.OrderRepository().Add(s.ctx, s.newOrder("O1", order.COD, 1)))
	s.Require().NoError(second.OrderRepository().Add(s.ctx, s.newOrder("O1", order.Prepaid, 1)))

	s.Require().NoError(first.Commit(s.ctx))
	err := second.Commit(s.ctx)

	s.ErrorIs(err, errs.ErrObjectAlreadyExists)
	stored, _ := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Equal(order.COD, stored.Type())
}

func (s *StoreTestSuite) TestReadsAreCopies() {
	s.add(s.newOrder("O1", order.COD, 1))

	got, _ := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Require().NoError(got.SetStatus(order.Delivered, time.Now()))

	again, _ := s.store.Get(s.ctx, order.Orders, kernel.MustOrderID("O1"))
	s.Equal(order.Pending, again.Status())
}

func (s *StoreTestSuite) TestFindKeepsInsertionOrder() {
	s.add(s.newOrder("B", order.COD, 3), s.newOrder("A", order.Prepaid, 1), s.newOrder("C", order.COD, 2))
	f, _ := order.NewFilter("", "cod", nil)

	got, err := s.store.Find(s.ctx, order.Orders, f)

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("B", got[0].ID().String())
	s.Equal("C", got[1].ID().String())

	again, _ := s.store.Find(s.ctx, order.Orders, f)
	s.Equal(got, again)
}

func (s *StoreTestSuite) TestFindInsideTransactionSeesStagedWrites() {
	s.add(s.newOrder("A", order.COD, 1))
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	repo := uow.OrderRepository()
	a, _ := repo.Get(s.ctx, order.Orders, kernel.MustOrderID("A"))
	s.Require().NoError(a.SetStatus(order.Processing, time.Now()))
	s.Require().NoError(repo.Update(s.ctx, a))
	s.Require().NoError(repo.Add(s.ctx, s.newOrder("B", order.COD, 2)))

	f, _ := order.NewFilter("Processing", "", nil)
	processing, err := repo.Find(s.ctx, order.Orders, f)
	s.Require().NoError(err)
	all, err := repo.All(s.ctx, order.Orders)
	s.Require().NoError(err)

	s.Len(processing, 1)
	s.Len(all, 2)
	s.Equal("B", all[1].ID().String())
}

func (s *StoreTestSuite) TestCommitWritesOutbox() {
	s.add(s.newOrder("O1", order.COD, 1), s.newOrder("O2", order.COD, 1))

	pending, err := s.store.GetUnprocessed(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(outbox.OrderChangedEvent, pending[0].Name())
	s.Equal("orders/O1", pending[0].AggregateKey())

	s.Require().NoError(s.store.MarkProcessed(s.ctx, pending[0], time.Now()))
	rest, _ := s.store.GetUnprocessed(s.ctx, 10)
	s.Len(rest, 1)
	s.ErrorIs(s.store.MarkProcessed(s.ctx, pending[0], time.Now()), errs.ErrObjectNotFound)

	limited, _ := s.store.GetUnprocessed(s.ctx, 0)
	s.Empty(limited)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestConcurrentCommandsSerializePerOrder(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := orderUoWFactory{memory.NewUnitOfWorkFactory(store)}
	locker := keylock.New()

	create := commands.NewCreateOrderCommandHandler(factory, locker)
	cmd, err := commands.NewCreateOrderCommand("O1", "Paid", "COD", time.Now(), nil)
	require.NoError(t, err)
	_, err = create.Handle(ctx, cmd)
	require.NoError(t, err)

	courier := commands.NewAllotCourierCommandHandler(factory, store, locker, localGenerator{})
	vendor := commands.NewAllotVendorCommandHandler(factory, locker)
	status := commands.NewSetStatusCommandHandler(factory, locker)

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				c, _ := commands.NewAllotCourierCommand(order.Orders, "O1", i%2 == 0)
				_, err := courier.Handle(ctx, c)
				assert.NoError(t, err)
			case 1:
				name := "Vendor"
				c, _ := commands.NewAllotVendorCommand(order.Orders, "O1", true, &name)
				_, err := vendor.Handle(ctx, c)
				assert.NoError(t, err)
			default:
				c, _ := commands.NewSetStatusCommand(order.Orders, "O1", "Processing")
				_, err := status.Handle(ctx, c)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	final, err := store.Get(ctx, order.Orders, kernel.MustOrderID("O1"))
	require.NoError(t, err)
	c := final.CourierAllotment()
	require.NotNil(t, c)
	assert.Equal(t, c.Decision(), c.TrackingID() != nil)
	assert.Equal(t, order.Processing, final.Status())
	assert.Equal(t, 0, locker.Len())

	pending, _ := store.GetUnprocessed(ctx, commands.MaxOutboxBatch)
	assert.Len(t, pending, 41)
}

type localGenerator struct{}

func (localGenerator) Generate(context.Context, *order.Order) (kernel.TrackingID, error) {
	return kernel.GenerateTrackingID(), nil
}

type orderUoWFactory struct {
	memory.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.UnitOfWorkFactory.Create()
}
