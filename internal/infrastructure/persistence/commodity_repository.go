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

// GormCommodityRepository implements CommodityRepository using GORM
type GormCommodityRepository struct {
	db *gorm.DB
}

// NewGormCommodityRepository creates a new GormCommodityRepository
func NewGormCommodityRepository(db *gorm.DB) *GormCommodityRepository {
	return &GormCommodityRepository{db: db}
}

// FindByID finds a commodity by its ID
func (r *GormCommodityRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Commodity, error) {
	var commodity registry.Commodity
	if err := r.db.WithContext(ctx).First(&commodity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &commodity, nil
}

// FindByName finds a commodity by its name
func (r *GormCommodityRepository) FindByName(ctx context.Context, name string) (*registry.Commodity, error) {
	var commodity registry.Commodity
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&commodity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &commodity, nil
}

// FindAll finds all commodities matching the filter
func (r *GormCommodityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Commodity, error) {
	var commodities []registry.Commodity
	query := r.applyFilter(r.db.WithContext(ctx).Model(&registry.Commodity{}), filter)

	if err := query.Find(&commodities).Error; err != nil {
		return nil, err
	}
	return commodities, nil
}

// Save creates or updates a commodity
func (r *GormCommodityRepository) Save(ctx context.Context, commodity *registry.Commodity) error {
	if err := r.db.WithContext(ctx).Save(commodity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a commodity
func (r *GormCommodityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.Commodity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts commodities matching the filter
func (r *GormCommodityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&registry.Commodity{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a commodity with the given name exists
func (r *GormCommodityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registry.Commodity{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormCommodityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applySearch applies search filters without pagination
func (r *GormCommodityRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	return query
}

// Ensure GormCommodityRepository implements CommodityRepository
var _ registry.CommodityRepository = (*GormCommodityRepository)(nil)
