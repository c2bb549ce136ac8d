// Package auditrepo persists the append-only audit trail. Writes bypass the
// command transaction: an audit outage must never fail the operation that
// triggered it, so Record logs and swallows its own errors.
package auditrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/audit"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for one audit record.
type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	LocationID *uuid.UUID `gorm:"type:uuid"`
	UserID     *string    `gorm:"type:varchar(64)"`
	Action     string     `gorm:"type:varchar(64);not null"`
	Details    string     `gorm:"type:text;not null"`
	OccurredAt time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) EntryDTO {
	var locationID *uuid.UUID
	if entry.LocationID() != nil {
		raw := entry.LocationID().Bytes()
		locationID = &raw
	}

	return EntryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		LocationID: locationID,
		UserID:     entry.UserID(),
		Action:     entry.Action(),
		Details:    entry.Details(),
		OccurredAt: entry.OccurredAt(),
	}
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var locationID *kernel.UUID
	if dto.LocationID != nil {
		parsed, locErr := kernel.UUIDFromBytes(dto.LocationID[:])
		if locErr != nil {
			return nil, locErr
		}
		locationID = &parsed
	}

	return audit.NewEntry(id, orderID, locationID, dto.UserID, dto.Action, dto.Details, dto.OccurredAt)
}
