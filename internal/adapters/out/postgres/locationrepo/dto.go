// Package locationrepo persists the production-stage reference data. The
// locations table is admin-managed and read-mostly; the repository mostly
// serves lookups by id set for route resolution.
package locationrepo

import (
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationDTO represents the database structure for persisting locations.
type LocationDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(128);not null;uniqueIndex"`
	UsedOrder       int             `gorm:"type:int;not null;index"`
	IsPrimary       bool            `gorm:"not null"`
	SkipAutoQueue   bool            `gorm:"not null"`
	CountMultiplier decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	NoCount         bool            `gorm:"not null"`
}

// TableName specifies the database table name for location entities.
func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(loc *location.Location) LocationDTO {
	return LocationDTO{
		ID:              loc.ID().Bytes(),
		Name:            loc.Name(),
		UsedOrder:       loc.UsedOrder(),
		IsPrimary:       loc.IsPrimary(),
		SkipAutoQueue:   loc.SkipAutoQueue(),
		CountMultiplier: loc.CountMultiplier(),
		NoCount:         loc.NoCount(),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(
		id,
		dto.Name,
		dto.UsedOrder,
		dto.IsPrimary,
		dto.SkipAutoQueue,
		dto.CountMultiplier,
		dto.NoCount,
	)
}
