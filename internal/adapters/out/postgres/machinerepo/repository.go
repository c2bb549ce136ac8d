package machinerepo

import (
	"context"
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolationCode = "23505"

// GormMachineRepository implements MachineRepository using GORM.
type GormMachineRepository struct {
	db *gorm.DB
}

// NewGormMachineRepository creates a new GORM machine repository.
func NewGormMachineRepository(db *gorm.DB) *GormMachineRepository {
	return &GormMachineRepository{db: db}
}

// Add saves a new machine to the database.
func (r *GormMachineRepository) Add(ctx context.Context, m *machine.Machine) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := machineFromDomain(m)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("code", err)
		}
		return err
	}

	return nil
}

// Get retrieves a machine by ID.
func (r *GormMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MachineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("machine", id.String())
		}
		return nil, err
	}

	return machineToDomain(dto)
}

// GetByLocation retrieves every machine registered at the location, ordered
// by code.
func (r *GormMachineRepository) GetByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*machine.Machine, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MachineDTO
	err := r.db.WithContext(ctx).
		Order("code").
		Find(&dtos, "location_id = ?", locationID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	machines := make([]*machine.Machine, 0, len(dtos))
	for _, dto := range dtos {
		m, err := machineToDomain(dto)
		if err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}

	return machines, nil
}

// SaveAssignment upserts the assignment keyed by its (order, location,
// machine) triple.
func (r *GormMachineRepository) SaveAssignment(ctx context.Context, a *machine.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(a)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "location_id"}, {Name: "machine_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&dto).Error
}

// GetAssignment retrieves the assignment for the triple.
func (r *GormMachineRepository) GetAssignment(
	ctx context.Context, orderID, locationID, machineID kernel.UUID,
) (*machine.Assignment, error) {
	if err := errors.Join(orderID.Validate(), locationID.Validate(), machineID.Validate()); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND location_id = ? AND machine_id = ?",
			orderID.Bytes(), locationID.Bytes(), machineID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment",
				fmt.Sprintf("%s/%s/%s", orderID, locationID, machineID))
		}
		return nil, err
	}

	return assignmentToDomain(dto)
}

// GetAssignmentsForOrder retrieves every assignment of the order.
func (r *GormMachineRepository) GetAssignmentsForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*machine.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*machine.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := assignmentToDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
