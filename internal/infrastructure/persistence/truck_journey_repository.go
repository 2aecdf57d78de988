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

// openJourneyStatuses are the lifecycle states where a journey still
// accepts checkins
var openJourneyStatuses = []checkpoint.JourneyStatus{
	checkpoint.JourneyStatusPending,
	checkpoint.JourneyStatusOnGoing,
}

// GormTruckJourneyRepository implements TruckJourneyRepository using GORM
type GormTruckJourneyRepository struct {
	db *gorm.DB
}

// NewGormTruckJourneyRepository creates a new GormTruckJourneyRepository
func NewGormTruckJourneyRepository(db *gorm.DB) *GormTruckJourneyRepository {
	return &GormTruckJourneyRepository{db: db}
}

// FindByID finds a journey by its ID
func (r *GormTruckJourneyRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkpoint.TruckJourney, error) {
	var journey checkpoint.TruckJourney
	if err := r.db.WithContext(ctx).First(&journey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindByIDForUpdate finds a journey and takes a row lock on it for the
// duration of the surrounding transaction. Only meaningful when the
// repository is obtained through a TransactionScope.
func (r *GormTruckJourneyRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkpoint.TruckJourney, error) {
	var journey checkpoint.TruckJourney
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

// FindByDeclarationNumber finds a journey by its public number
func (r *GormTruckJourneyRepository) FindByDeclarationNumber(ctx context.Context, number string) (*checkpoint.TruckJourney, error) {
	var journey checkpoint.TruckJourney
	if err := r.db.WithContext(ctx).
		Where("declaration_number = ?", number).
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindLatestByTruck finds the truck's most recently created journey
func (r *GormTruckJourneyRepository) FindLatestByTruck(ctx context.Context, truckID uuid.UUID) (*checkpoint.TruckJourney, error) {
	var journey checkpoint.TruckJourney
	if err := r.db.WithContext(ctx).
		Where("truck_id = ?", truckID).
		Order("created_at DESC").
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &journey, nil
}

// FindOpenByTruck finds the truck's open (PENDING or ON_GOING) journey
func (r *GormTruckJourneyRepository) FindOpenByTruck(ctx context.Context, truckID uuid.UUID) (*checkpoint.TruckJourney, error) {
	var journey checkpoint.TruckJourney
	if err := r.db.WithContext(ctx).
		Where("truck_id = ? AND status IN ?", truckID, openJourneyStatuses).
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
func (r *GormTruckJourneyRepository) FindByStatus(ctx context.Context, status checkpoint.JourneyStatus, filter shared.Filter) ([]checkpoint.TruckJourney, error) {
	var journeys []checkpoint.TruckJourney
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&checkpoint.TruckJourney{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

// FindAll finds all journeys matching the filter
func (r *GormTruckJourneyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkpoint.TruckJourney, error) {
	var journeys []checkpoint.TruckJourney
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkpoint.TruckJourney{}), filter)

	if err := query.Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

// Save creates or updates a journey
func (r *GormTruckJourneyRepository) Save(ctx context.Context, journey *checkpoint.TruckJourney) error {
	return r.db.WithContext(ctx).Save(journey).Error
}

// Count counts journeys matching the filter
func (r *GormTruckJourneyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&checkpoint.TruckJourney{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTruckJourneyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormTruckJourneyRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("declaration_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "truck_id":
			query = query.Where("truck_id = ?", value)
		case "exporter_id":
			query = query.Where("exporter_id = ?", value)
		case "path_id":
			query = query.Where("path_id = ?", value)
		}
	}

	return query
}

// Ensure GormTruckJourneyRepository implements TruckJourneyRepository
var _ checkpoint.TruckJourneyRepository = (*GormTruckJourneyRepository)(nil)
