package locationrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Add saves a new location to the database.
func (r *GormLocationRepository) Add(ctx context.Context, loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(loc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("name", err)
		}
		return err
	}

	return nil
}

// Get retrieves a location by ID.
func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the locations for every given ID. Any unknown ID makes
// the whole lookup fail, so a stale route can never be half-resolved.
func (r *GormLocationRepository) GetByIDs(
	ctx context.Context, ids []kernel.UUID,
) ([]*location.Location, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", rawIDs).Error; err != nil {
		return nil, err
	}
	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("locations", ids)
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		loc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, nil
}

// GetAll retrieves every location ordered by workflow precedence, then name.
func (r *GormLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("used_order, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		loc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, nil
}
