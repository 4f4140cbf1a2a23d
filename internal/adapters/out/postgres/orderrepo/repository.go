package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db        *gorm.DB
	tracker   aggregateTracker
	forUpdate bool
}

// aggregateTracker collects the aggregates written in a unit of work.
type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be
// nil for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// ForUpdate returns a repository whose Get locks the row until the
// surrounding transaction ends.
func (r *GormOrderRepository) ForUpdate() *GormOrderRepository {
	locked := *r
	locked.forUpdate = true
	return &locked
}

// Add inserts a new record into its collection's table.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	table, err := tableFor(aggregate.Collection())
	if err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err = r.db.WithContext(ctx).Table(table).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderId", dto.ID, err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update overwrites every column of an existing record.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	table, err := tableFor(aggregate.Collection())
	if err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Table(table).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("seq").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", dto.ID)
	}

	r.track(aggregate)
	return nil
}

// Get retrieves one record by collection and id.
func (r *GormOrderRepository) Get(ctx context.Context, collection order.Collection, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Table(table)
	if r.forUpdate {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	if err = query.Where("id = ?", id.String()).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto, collection)
}

// All returns a collection in insertion order.
func (r *GormOrderRepository) All(ctx context.Context, collection order.Collection) ([]*order.Order, error) {
	f, _ := order.NewFilter("", "", nil)
	return r.Find(ctx, collection, f)
}

// Find evaluates the filter in SQL. Status and order type are stored under
// their canonical names, which contain no separators, so LOWER(column)
// equals the normalized facet.
func (r *GormOrderRepository) Find(ctx context.Context, collection order.Collection, filter order.Filter) ([]*order.Order, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Table(table)
	if key := filter.StatusKey(); key != "" {
		query = query.Where("LOWER(status) = ?", key)
	}
	if key := filter.TypeKey(); key != "" {
		query = query.Where("LOWER(order_type) = ?", key)
	}
	if dr := filter.DateRange(); dr != nil {
		query = query.Where("ordered_on BETWEEN ? AND ?",
			dr.Start().Format(kernel.DateLayout), dr.End().Format(kernel.DateLayout))
	}

	var dtos []OrderDTO
	if err = query.Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto, collection)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate)
	}
}
