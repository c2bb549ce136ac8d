// Package machinerepo persists equipment reference data and the advisory
// machine assignments.
package machinerepo

import (
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/machine"

	"github.com/google/uuid"
)

// MachineDTO represents the database structure for persisting machines.
type MachineDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName specifies the database table name for machine entities.
func (MachineDTO) TableName() string {
	return "machines"
}

// AssignmentDTO represents one planned workload share. Identity is the
// (order, location, machine) triple.
type AssignmentDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	MachineID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity   int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for assignment rows.
func (AssignmentDTO) TableName() string {
	return "machine_assignments"
}

func machineFromDomain(m *machine.Machine) MachineDTO {
	return MachineDTO{
		ID:         m.ID().Bytes(),
		LocationID: m.LocationID().Bytes(),
		Code:       m.Code(),
	}
}

func machineToDomain(dto MachineDTO) (*machine.Machine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}

	return machine.RestoreMachine(id, locationID, dto.Code)
}

func assignmentFromDomain(a *machine.Assignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    a.OrderID().Bytes(),
		LocationID: a.LocationID().Bytes(),
		MachineID:  a.MachineID().Bytes(),
		Quantity:   a.Quantity(),
	}
}

func assignmentToDomain(dto AssignmentDTO) (*machine.Assignment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	machineID, err := kernel.UUIDFromBytes(dto.MachineID[:])
	if err != nil {
		return nil, err
	}

	return machine.RestoreAssignment(orderID, locationID, machineID, dto.Quantity)
}
