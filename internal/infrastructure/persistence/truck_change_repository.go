package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTruckChangeRepository implements TruckChangeRepository using GORM
type GormTruckChangeRepository struct {
	db *gorm.DB
}

// NewGormTruckChangeRepository creates a new GormTruckChangeRepository
func NewGormTruckChangeRepository(db *gorm.DB) *GormTruckChangeRepository {
	return &GormTruckChangeRepository{db: db}
}

// FindByJourney lists all truck changes recorded for a journey
func (r *GormTruckChangeRepository) FindByJourney(ctx context.Context, journeyID uuid.UUID) ([]checkpoint.TruckChange, error) {
	var changes []checkpoint.TruckChange
	if err := r.db.WithContext(ctx).
		Where("journey_id = ?", journeyID).
		Order("created_at ASC").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// FindAll finds all truck changes matching the filter
func (r *GormTruckChangeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkpoint.TruckChange, error) {
	var changes []checkpoint.TruckChange
	query := r.db.WithContext(ctx).Model(&checkpoint.TruckChange{})

	if journeyID, ok := filter.Filters["journey_id"]; ok {
		query = query.Where("journey_id = ?", journeyID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// Save creates a truck change record
func (r *GormTruckChangeRepository) Save(ctx context.Context, change *checkpoint.TruckChange) error {
	return r.db.WithContext(ctx).Save(change).Error
}

// Ensure GormTruckChangeRepository implements TruckChangeRepository
var _ checkpoint.TruckChangeRepository = (*GormTruckChangeRepository)(nil)
