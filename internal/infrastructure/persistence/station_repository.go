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

// GormStationRepository implements StationRepository using GORM
type GormStationRepository struct {
	db *gorm.DB
}

// NewGormStationRepository creates a new GormStationRepository
func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// FindByID finds a station by its ID
func (r *GormStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkpoint.Station, error) {
	var station checkpoint.Station
	if err := r.db.WithContext(ctx).First(&station, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &station, nil
}

// FindByMachineNumber finds the station hosting a weighbridge device
func (r *GormStationRepository) FindByMachineNumber(ctx context.Context, machineNumber string) (*checkpoint.Station, error) {
	var station checkpoint.Station
	if err := r.db.WithContext(ctx).
		Where("machine_number = ?", machineNumber).
		First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &station, nil
}

// FindByName finds a station by name
func (r *GormStationRepository) FindByName(ctx context.Context, name string) (*checkpoint.Station, error) {
	var station checkpoint.Station
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &station, nil
}

// FindAll finds all stations matching the filter
func (r *GormStationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkpoint.Station, error) {
	var stations []checkpoint.Station
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkpoint.Station{}), filter)

	if err := query.Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

// Save creates or updates a station
func (r *GormStationRepository) Save(ctx context.Context, station *checkpoint.Station) error {
	return r.db.WithContext(ctx).Save(station).Error
}

// Delete deletes a station
func (r *GormStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&checkpoint.Station{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stations matching the filter
func (r *GormStationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&checkpoint.Station{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, StationSortFields, "name")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormStationRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR machine_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "woreda":
			query = query.Where("woreda = ?", value)
		case "kebele":
			query = query.Where("kebele = ?", value)
		}
	}

	return query
}

// Ensure GormStationRepository implements StationRepository
var _ checkpoint.StationRepository = (*GormStationRepository)(nil)
