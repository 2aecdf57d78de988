package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GormTruckRepository
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// FindByID finds a truck by its ID
func (r *GormTruckRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Truck, error) {
	var truck registry.Truck
	if err := r.db.WithContext(ctx).First(&truck, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &truck, nil
}

// FindByPlateNumber finds a truck by its plate number
func (r *GormTruckRepository) FindByPlateNumber(ctx context.Context, plateNumber string) (*registry.Truck, error) {
	var truck registry.Truck
	if err := r.db.WithContext(ctx).
		Where("plate_number = ?", strings.ToUpper(strings.TrimSpace(plateNumber))).
		First(&truck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &truck, nil
}

// FindAll finds all trucks matching the filter
func (r *GormTruckRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Truck, error) {
	var trucks []registry.Truck
	query := r.applyFilter(r.db.WithContext(ctx).Model(&registry.Truck{}), filter)

	if err := query.Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

// Save creates or updates a truck
func (r *GormTruckRepository) Save(ctx context.Context, truck *registry.Truck) error {
	if err := r.db.WithContext(ctx).Save(truck).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a truck
func (r *GormTruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.Truck{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts trucks matching the filter
func (r *GormTruckRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&registry.Truck{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPlateNumber checks if a truck with the given plate exists
func (r *GormTruckRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registry.Truck{}).
		Where("plate_number = ?", strings.ToUpper(strings.TrimSpace(plateNumber))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTruckRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("plate_number ASC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormTruckRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("plate_number ILIKE ? OR chassis_number ILIKE ? OR owner_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		}
	}

	return query
}

// Ensure GormTruckRepository implements TruckRepository
var _ registry.TruckRepository = (*GormTruckRepository)(nil)
