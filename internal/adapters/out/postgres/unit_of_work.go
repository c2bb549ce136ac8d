// Package postgres provides a GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one business transaction: queue mutations,
// status transitions, and the aggregates they touch commit or roll back
// together.
package postgres

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/locationrepo"
	"shopfloor/internal/adapters/out/postgres/machinerepo"
	"shopfloor/internal/adapters/out/postgres/orderrepo"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance so
// concurrent transactions stay isolated.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the order,
// location, and machine repositories. Repositories obtained from it run
// inside the transaction once Begin has been called.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// a commit it returns gorm.ErrInvalidTransaction, which deferred cleanup
// ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.connection(), uow)
}

// LocationRepository returns a location repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.connection())
}

// MachineRepository returns a machine repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) MachineRepository() ports.MachineRepository {
	return machinerepo.NewGormMachineRepository(uow.connection())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repositories call it on every add or update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) connection() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
