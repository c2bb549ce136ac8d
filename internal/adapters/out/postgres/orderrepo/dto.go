// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and the
// orders / order_progress tables.
package orderrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The version column carries the optimistic-concurrency
// counter checked on every update.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number             string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	TotalQuantity      int        `gorm:"type:int;not null"`
	DueDate            time.Time  `gorm:"not null"`
	Rush               bool       `gorm:"not null"`
	RushSetAt          *time.Time
	QueuePosition      *int `gorm:"type:int"`
	IsFinished         bool       `gorm:"not null;index"`
	IsShipped          bool       `gorm:"not null"`
	IsPartiallyShipped bool       `gorm:"not null"`
	ShippedQuantity    int        `gorm:"type:int;not null"`
	CreatedAt          time.Time  `gorm:"not null"`
	Version            int        `gorm:"type:int;not null"`

	Progress []ProgressDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ProgressDTO represents one order-location row. Identity is the
// (order, location) pair.
type ProgressDTO struct {
	OrderID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationID        uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Status            int       `gorm:"type:int;not null;index"`
	QueuePosition     *int      `gorm:"type:int"`
	CompletedQuantity int       `gorm:"type:int;not null"`
	StartedAt         *time.Time
	CompletedAt       *time.Time
}

// TableName specifies the database table name for order-location rows.
func (ProgressDTO) TableName() string {
	return "order_progress"
}

// fromDomain converts an order aggregate to its database representation,
// including every progress row.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	progress := make([]ProgressDTO, 0, len(aggregate.Progress()))
	for _, p := range aggregate.Progress() {
		progress = append(progress, ProgressDTO{
			OrderID:           orderID,
			LocationID:        p.LocationID().Bytes(),
			Status:            int(p.Status()),
			QueuePosition:     p.QueuePosition(),
			CompletedQuantity: p.CompletedQuantity(),
			StartedAt:         p.StartedAt(),
			CompletedAt:       p.CompletedAt(),
		})
	}

	return OrderDTO{
		ID:                 orderID,
		Number:             aggregate.Number(),
		TotalQuantity:      aggregate.TotalQuantity(),
		DueDate:            aggregate.DueDate(),
		Rush:               aggregate.IsRush(),
		RushSetAt:          aggregate.RushSetAt(),
		QueuePosition:      aggregate.QueuePosition(),
		IsFinished:         aggregate.IsFinished(),
		IsShipped:          aggregate.IsShipped(),
		IsPartiallyShipped: aggregate.IsPartiallyShipped(),
		ShippedQuantity:    aggregate.ShippedQuantity(),
		CreatedAt:          aggregate.CreatedAt(),
		Version:            aggregate.Version(),
		Progress:           progress,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	progress := make([]*order.LocationProgress, 0, len(dto.Progress))
	for _, p := range dto.Progress {
		locationID, locErr := kernel.UUIDFromBytes(p.LocationID[:])
		if locErr != nil {
			return nil, locErr
		}

		row, rowErr := order.RestoreLocationProgress(
			locationID,
			order.Status(p.Status),
			p.QueuePosition,
			p.CompletedQuantity,
			p.StartedAt,
			p.CompletedAt,
		)
		if rowErr != nil {
			return nil, rowErr
		}
		progress = append(progress, row)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.TotalQuantity,
		dto.DueDate,
		dto.Rush,
		dto.RushSetAt,
		dto.QueuePosition,
		dto.IsFinished,
		dto.IsShipped,
		dto.IsPartiallyShipped,
		dto.ShippedQuantity,
		dto.CreatedAt,
		dto.Version,
		progress,
	)
}
