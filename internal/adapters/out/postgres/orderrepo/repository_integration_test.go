package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker records the aggregates the repository reports as written.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate *order.Order) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL schema created by the embedded migrations.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("integration test")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(connStr))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, return_requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("*order.Order")).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id string, typ order.Type, orderedAt time.Time) *order.Order {
	items := []order.LineItem{}
	item, err := order.NewLineItem("M", 2)
	suite.Require().NoError(err)
	items = append(items, item)

	o, err := order.NewOrder(kernel.MustOrderID(id), order.PaymentPaid, typ, orderedAt, items)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	o := suite.newOrder("O-1", order.COD, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	name := "Acme"
	suite.Require().NoError(o.AllotVendor(true, &name, now))
	trackingID := kernel.GenerateTrackingID()
	suite.Require().NoError(o.AllotCourier(true, &trackingID, now))

	suite.Require().NoError(suite.repository.Add(ctx, o))
	got, err := suite.repository.Get(ctx, order.Orders, o.ID())

	suite.Require().NoError(err)
	suite.True(o.IsEqual(got))
	suite.Equal(order.Pending, got.Status())
	suite.Equal(order.DeliveryShipped, got.DeliveryStatus())
	suite.Equal("Acme", *got.VendorAllotment().VendorName())
	suite.Equal(trackingID, *got.CourierAllotment().TrackingID())
	suite.True(o.OrderedAt().Equal(got.OrderedAt()))
	suite.True(now.Equal(got.LastUpdated()))
	suite.Equal(o.LineItems(), got.LineItems())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	at := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("O-1", order.COD, at)))

	err := suite.repository.Add(ctx, suite.newOrder("O-1", order.Prepaid, at))

	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCollectionsAreSeparateTables() {
	ctx := context.Background()
	source := suite.newOrder("O-1", order.COD, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, source))
	ret, err := order.NewReturnRequest(source, "wrong size", time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, ret))

	got, err := suite.repository.Get(ctx, order.Returns, source.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReturnRequested, got.Status())
	suite.Equal("wrong size", got.ReturnReason())
	orders, err := suite.repository.All(ctx, order.Orders)
	suite.Require().NoError(err)
	suite.Len(orders, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), order.Orders, kernel.MustOrderID("missing"))

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate() {
	ctx := context.Background()
	o := suite.newOrder("O-1", order.COD, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.SetStatus(order.Cancelled, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, order.Orders, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.Equal(order.DeliveryCancelled, got.DeliveryStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	o := suite.newOrder("O-1", order.COD, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))

	err := suite.repository.Update(context.Background(), o)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFind() {
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 23, 0, 0, 0, time.UTC) }
	for _, o := range []*order.Order{
		suite.newOrder("A", order.COD, day(1)),
		suite.newOrder("B", order.Prepaid, day(2)),
		suite.newOrder("C", order.COD, day(3)),
	} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	march2, err := kernel.ParseDateRange("2024-03-02", "2024-03-03")
	suite.Require().NoError(err)

	testCases := []struct {
		name      string
		status    string
		orderType string
		dateRange *kernel.DateRange
		want      []string
	}{
		{name: "empty filter", want: []string{"A", "B", "C"}},
		{name: "type is case insensitive", orderType: "cod", want: []string{"A", "C"}},
		{name: "status is case insensitive", status: "PENDING", orderType: "COD", want: []string{"A", "C"}},
		{name: "date range is inclusive", dateRange: &march2, want: []string{"B", "C"}},
		{name: "all facets", orderType: "COD", dateRange: &march2, want: []string{"C"}},
		{name: "unknown status", status: "Lost", want: []string{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			f, err := order.NewFilter(tc.status, tc.orderType, tc.dateRange)
			suite.Require().NoError(err)

			got, err := suite.repository.Find(ctx, order.Orders, f)

			suite.Require().NoError(err)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID().String())
			}
			suite.Equal(tc.want, ids)
		})
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
