package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	"fulfillment/internal/adapters/out/couriergw"
	"fulfillment/internal/adapters/out/eventlog"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	"github.com/twmb/franz-go/pkg/kgo"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters selected by Config and builds the
// handlers on top of them.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderReader
	outbox     ports.OutboxRepository
	locker     *keylock.KeyedMutex
	publisher  ports.EventPublisher
	trackingID ports.TrackingIDGenerator

	gormDB   *gorm.DB
	producer *kgo.Client
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		logger: logger,
		locker: keylock.New(),
	}

	if err := c.initStorage(); err != nil {
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.initTrackingID()

	return c, nil
}

func (c *CompositionRoot) initStorage() error {
	switch c.config.Storage {
	case StoragePostgres:
		if err := postgres.Migrate(c.config.DatabaseURL()); err != nil {
			return err
		}
		db, err := gorm.Open(gormpostgres.Open(c.config.DatabaseURL()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.reader = orderrepo.NewGormOrderRepository(db, nil)
		c.outbox = outboxrepo.NewGormOutboxRepository(db)
	default:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.reader = store
		c.outbox = store
	}
	c.logger.Info("Order store ready", "storage", c.config.Storage)
	return nil
}

func (c *CompositionRoot) initPublisher() error {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		c.publisher = eventlog.NewPublisher(c.logger)
		return nil
	}

	client, err := kafkaout.NewProducerClient(brokers, c.config.ServiceName)
	if err != nil {
		return err
	}
	c.producer = client
	c.publisher = kafkaout.NewPublisher(client, c.config.KafkaOrderChangedTopic)
	return nil
}

func (c *CompositionRoot) initTrackingID() {
	if c.config.CourierGatewayURL == "" {
		c.trackingID = couriergw.LocalGenerator{}
		return
	}
	c.trackingID = couriergw.NewClient(couriergw.Config{
		BaseURL: c.config.CourierGatewayURL,
		Retries: c.config.CourierGatewayRetries,
		Timeout: 5 * time.Second,
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateSetStatusCommandHandler() commands.SetStatusCommandHandler {
	return commands.NewSetStatusCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateAllotVendorCommandHandler() commands.AllotVendorCommandHandler {
	return commands.NewAllotVendorCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateAllotCourierCommandHandler() commands.AllotCourierCommandHandler {
	return commands.NewAllotCourierCommandHandler(c.orderUoWFactory(), c.reader, c.locker, c.trackingID)
}

func (c *CompositionRoot) CreateFileReturnCommandHandler() commands.FileReturnCommandHandler {
	return commands.NewFileReturnCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	return commands.NewPublishOutboxCommandHandler(c.outbox, c.publisher)
}

func (c *CompositionRoot) CreateFindOrdersQueryHandler() queries.FindOrdersQueryHandler {
	return queries.NewFindOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

// CreateRouter wires every handler behind the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateSetStatusCommandHandler(),
		c.CreateAllotVendorCommandHandler(),
		c.CreateAllotCourierCommandHandler(),
		c.CreateFileReturnCommandHandler(),
		c.CreateFindOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
	)
	return httpin.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePublishOutboxCommandHandler(), c.config.OutboxSchedule, c.logger)
}

// CreateOrderPlacedConsumer returns nil when Kafka is not configured. The
// caller owns the returned client.
func (c *CompositionRoot) CreateOrderPlacedConsumer() (*kafkain.OrderPlacedConsumer, *kgo.Client, error) {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		return nil, nil, nil
	}
	client, err := kafkain.NewConsumerClient(brokers, c.config.KafkaConsumerGroup, c.config.KafkaOrderPlacedTopic)
	if err != nil {
		return nil, nil, err
	}
	return kafkain.NewOrderPlacedConsumer(client, c.CreateCreateOrderCommandHandler(), c.logger), client, nil
}

// Close releases the producer and the database pool.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.producer != nil {
		c.producer.Close()
	}
	if c.gormDB != nil {
		sqlDB, err := c.gormDB.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err = sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
