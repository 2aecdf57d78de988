package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCheckinRepository implements CheckinRepository using GORM
type GormCheckinRepository struct {
	db *gorm.DB
}

// NewGormCheckinRepository creates a new GormCheckinRepository
func NewGormCheckinRepository(db *gorm.DB) *GormCheckinRepository {
	return &GormCheckinRepository{db: db}
}

// FindByID finds a checkin by its ID
func (r *GormCheckinRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkpoint.Checkin, error) {
	var checkin checkpoint.Checkin
	if err := r.db.WithContext(ctx).First(&checkin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}

// FindByJourney finds all checkins of a journey in insertion order
func (r *GormCheckinRepository) FindByJourney(ctx context.Context, journeyID uuid.UUID, kind checkpoint.JourneyKind) ([]checkpoint.Checkin, error) {
	var checkins []checkpoint.Checkin
	if err := r.db.WithContext(ctx).
		Where(journeyColumn(kind)+" = ?", journeyID).
		Order("checkin_time ASC, created_at ASC").
		Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

// FindByJourneyAndStation finds the journey's checkin at one station
func (r *GormCheckinRepository) FindByJourneyAndStation(ctx context.Context, journeyID uuid.UUID, kind checkpoint.JourneyKind, stationID uuid.UUID) (*checkpoint.Checkin, error) {
	var checkin checkpoint.Checkin
	if err := r.db.WithContext(ctx).
		Where(journeyColumn(kind)+" = ? AND station_id = ?", journeyID, stationID).
		First(&checkin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}

// FindByReceiptNumber finds a checkin by its payment receipt number
func (r *GormCheckinRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*checkpoint.Checkin, error) {
	var checkin checkpoint.Checkin
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&checkin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}

// FindUnsettledByStation lists checkins awaiting payment at a station
func (r *GormCheckinRepository) FindUnsettledByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]checkpoint.Checkin, error) {
	var checkins []checkpoint.Checkin
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&checkpoint.Checkin{}).
			Where("station_id = ? AND status = ?", stationID, checkpoint.CheckinStatusUnpaid),
		filter,
	)

	if err := query.Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

// Save creates or updates a checkin. The unique (journey, station)
// constraint is the final guard against duplicate visits racing past
// validation; violations surface as shared.ErrAlreadyExists.
func (r *GormCheckinRepository) Save(ctx context.Context, checkin *checkpoint.Checkin) error {
	if err := r.db.WithContext(ctx).Save(checkin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Count counts checkins matching the filter
func (r *GormCheckinRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&checkpoint.Checkin{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCheckinRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CheckinSortFields, "checkin_time")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("checkin_time ASC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormCheckinRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("receipt_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "station_id":
			query = query.Where("station_id = ?", value)
		}
	}

	return query
}

// journeyColumn maps a journey kind to the checkin foreign key column
func journeyColumn(kind checkpoint.JourneyKind) string {
	if kind == checkpoint.JourneyKindWalkIn {
		return "walk_in_journey_id"
	}
	return "truck_journey_id"
}

// Ensure GormCheckinRepository implements CheckinRepository
var _ checkpoint.CheckinRepository = (*GormCheckinRepository)(nil)
