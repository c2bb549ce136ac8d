package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for the production
// location registry. Locations are admin-managed reference data.
type LocationRepository interface {
	// Add persists a new location. The name must be unique.
	Add(ctx context.Context, loc *location.Location) error

	// Get retrieves a location by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)

	// GetByIDs retrieves the locations for the given identifiers.
	// Returns ObjectNotFound when any identifier is unknown.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*location.Location, error)

	// GetAll retrieves every registered location.
	GetAll(ctx context.Context) ([]*location.Location, error)
}
