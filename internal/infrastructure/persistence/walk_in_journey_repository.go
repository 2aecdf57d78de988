package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalkInJourneyRepository implements WalkInJourneyRepository using GORM
type GormWalkInJourneyRepository struct {
	db *gorm.DB
}

// NewGormWalkInJourneyRepository creates a new GormWalkInJourneyRepository
func NewGormWalkInJourneyRepository(db *gorm.DB) *GormWalkInJourneyRepository {
	return &GormWalkInJourneyRepository{db: db}
}

// FindByID finds a journey by its ID
func (r *GormWalkInJourneyRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkpoint.WalkInJourney, error) {
	var journey checkpoint.WalkInJourney
	if err := r.db.WithContext(ctx).First(&journey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindByIDForUpdate finds a journey and takes a row lock on it
func (r *GormWalkInJourneyRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkpoint.WalkInJourney, error) {
	var journey checkpoint.WalkInJourney
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&journey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindByNumber finds a journey by its public number
func (r *GormWalkInJourneyRepository) FindByNumber(ctx context.Context, number string) (*checkpoint.WalkInJourney, error) {
	var journey checkpoint.WalkInJourney
	if err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindLatestByExporter finds the exporter's most recently created journey
func (r *GormWalkInJourneyRepository) FindLatestByExporter(ctx context.Context, exporterID uuid.UUID) (*checkpoint.WalkInJourney, error) {
	var journey checkpoint.WalkInJourney
	if err := r.db.WithContext(ctx).
		Where("exporter_id = ?", exporterID).
		Order("created_at DESC").
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindOpenByExporter finds the exporter's open journey
func (r *GormWalkInJourneyRepository) FindOpenByExporter(ctx context.Context, exporterID uuid.UUID) (*checkpoint.WalkInJourney, error) {
	var journey checkpoint.WalkInJourney
	if err := r.db.WithContext(ctx).
		Where("exporter_id = ? AND status IN ?", exporterID, openJourneyStatuses).
		Order("created_at DESC").
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindByStatus finds journeys in a given lifecycle state
func (r *GormWalkInJourneyRepository) FindByStatus(ctx context.Context, status checkpoint.JourneyStatus, filter shared.Filter) ([]checkpoint.WalkInJourney, error) {
	var journeys []checkpoint.WalkInJourney
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&checkpoint.WalkInJourney{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

// FindAll finds all journeys matching the filter
func (r *GormWalkInJourneyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkpoint.WalkInJourney, error) {
	var journeys []checkpoint.WalkInJourney
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkpoint.WalkInJourney{}), filter)

	if err := query.Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

// Save creates or updates a journey
func (r *GormWalkInJourneyRepository) Save(ctx context.Context, journey *checkpoint.WalkInJourney) error {
	return r.db.WithContext(ctx).Save(journey).Error
}

// Count counts journeys matching the filter
func (r *GormWalkInJourneyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&checkpoint.WalkInJourney{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormWalkInJourneyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, JourneySortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormWalkInJourneyRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "exporter_id":
			query = query.Where("exporter_id = ?", value)
		case "path_id":
			query = query.Where("path_id = ?", value)
		}
	}

	return query
}

// Ensure GormWalkInJourneyRepository implements WalkInJourneyRepository
var _ checkpoint.WalkInJourneyRepository = (*GormWalkInJourneyRepository)(nil)
