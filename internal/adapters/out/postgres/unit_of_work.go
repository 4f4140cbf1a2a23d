// Package postgres provides the GORM-based Unit of Work over the order tables.
//
// A unit of work wraps one database transaction. Repositories handed out
// while the transaction is open lock the rows they read (SELECT ... FOR
// UPDATE), so concurrent writers of the same order serialize in the database
// as well as in-process. Every aggregate written through the unit of work is
// tracked, and Commit stores one outbox message per tracked aggregate in the
// same transaction before committing.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

func (f *GormUnitOfWorkFactory) create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make(map[string]*order.Order),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written during it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates map[string]*order.Order
	trackedOrder      []string
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the outbox messages of every tracked aggregate and commits.
// Returns error if no active transaction exists or if any step fails; the
// transaction is rolled back in that case.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages := make([]*outbox.Message, 0, len(uow.trackedOrder))
	for _, key := range uow.trackedOrder {
		msg, err := outbox.NewOrderChangedMessage(uow.trackedAggregates[key])
		if err != nil {
			return uow.abort(err)
		}
		messages = append(messages, msg)
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...); err != nil {
		return uow.abort(err)
	}

	err := uow.tx.Commit().Error
	uow.reset()
	return err
}

// Rollback discards all changes made within the current transaction.
// Calling it without an active transaction, such as after Commit, is a no-op.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.reset()
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Inside a transaction the repository locks the rows it reads; without one it
// uses the main connection directly.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx != nil {
		return orderrepo.NewGormOrderRepository(uow.tx, uow).ForUpdate()
	}
	return orderrepo.NewGormOrderRepository(uow.db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work. The
// latest state of each record wins.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	key := order.LockKey(aggregate.Collection(), aggregate.ID())
	if _, ok := uow.trackedAggregates[key]; !ok {
		uow.trackedOrder = append(uow.trackedOrder, key)
	}
	uow.trackedAggregates[key] = aggregate.Clone()
}

func (uow *GormUnitOfWork) abort(err error) error {
	_ = uow.tx.Rollback()
	uow.reset()
	return err
}

func (uow *GormUnitOfWork) reset() {
	uow.tx = nil
	uow.trackedAggregates = make(map[string]*order.Order)
	uow.trackedOrder = nil
}
