package orderrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolationCode = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its progress rows to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("number", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The row is matched on
// (id, version) and the stored version is incremented; zero rows affected
// means a concurrent writer won the race.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	currentVersion := dto.Version
	dto.Version = currentVersion + 1

	orderRow := dto
	orderRow.Progress = nil

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, currentVersion).
		Select("*").
		Omit("Progress", "created_at").
		Updates(&orderRow)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	if len(dto.Progress) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Progress).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with every progress row.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Progress").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// lockQueueAtLocation takes the location's queue lock until the current
// transaction ends. Every read-compute-write cycle over a location's queue
// acquires it first, so reorder and auto-admission serialize per location
// even when the queue is empty and there are no rows to lock.
func (r *GormOrderRepository) lockQueueAtLocation(ctx context.Context, locationID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", locationID.String()).Error
}

// GetQueuedAtLocation retrieves every order with an InQueue row at the
// location. It takes the location's queue lock and additionally locks the
// returned order rows for update.
func (r *GormOrderRepository) GetQueuedAtLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	if err := r.lockQueueAtLocation(ctx, locationID); err != nil {
		return nil, err
	}

	queued := r.db.Model(&ProgressDTO{}).
		Select("order_id").
		Where("location_id = ? AND status = ?", locationID.Bytes(), int(order.InQueue))

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Progress").
		Where("id IN (?)", queued).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// MaxQueuePositionAtLocation returns the highest queue position among the
// InQueue rows of the location, or 0 when its queue is empty. It takes the
// location's queue lock first, so a concurrent admission or reorder cannot
// renumber the queue between this read and the caller's write.
func (r *GormOrderRepository) MaxQueuePositionAtLocation(
	ctx context.Context, locationID kernel.UUID,
) (int, error) {
	if err := locationID.Validate(); err != nil {
		return 0, err
	}

	if err := r.lockQueueAtLocation(ctx, locationID); err != nil {
		return 0, err
	}

	var maxPosition int
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(queue_position), 0) FROM order_progress WHERE location_id = ? AND status = ?",
			locationID.Bytes(), int(order.InQueue)).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}

	return maxPosition, nil
}

// MaxGlobalQueuePosition returns the highest global queue position across
// all orders, or 0 when no order has been admitted.
func (r *GormOrderRepository) MaxGlobalQueuePosition(ctx context.Context) (int, error) {
	var maxPosition int
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(queue_position), 0) FROM orders").
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}

	return maxPosition, nil
}

// GetAllUnfinished retrieves every order not yet finished at all of its
// locations.
func (r *GormOrderRepository) GetAllUnfinished(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Progress").
		Where("is_finished = false").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
