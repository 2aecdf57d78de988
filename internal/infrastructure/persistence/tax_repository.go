package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
	"gorm.io/gorm"
)

// GormTaxRepository implements TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByID finds a tax by its ID
func (r *GormTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Tax, error) {
	var tax tariff.Tax
	if err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// FindApplicable finds the tax rate for the (station, taxpayer type,
// commodity) triple. A missing rate is shared.ErrNotFound; callers treat
// it as a blocking condition, never as a zero rate.
func (r *GormTaxRepository) FindApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*tariff.Tax, error) {
	var tax tariff.Tax
	if err := r.db.WithContext(ctx).
		Where("station_id = ? AND tax_payer_type_id = ? AND commodity_id = ?",
			stationID, taxPayerTypeID, commodityID).
		First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// FindByStation finds all rates configured for a station
func (r *GormTaxRepository) FindByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]tariff.Tax, error) {
	var taxes []tariff.Tax
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tariff.Tax{}).Where("station_id = ?", stationID),
		filter,
	)

	if err := query.Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

// FindAll finds all taxes matching the filter
func (r *GormTaxRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.Tax, error) {
	var taxes []tariff.Tax
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tariff.Tax{}), filter)

	if err := query.Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

// Save creates or updates a tax. One rate per (station, taxpayer type,
// commodity) triple is enforced by a unique index.
func (r *GormTaxRepository) Save(ctx context.Context, tax *tariff.Tax) error {
	if err := r.db.WithContext(ctx).Save(tax).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a tax
func (r *GormTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tariff.Tax{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts taxes matching the filter
func (r *GormTaxRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&tariff.Tax{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTaxRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormTaxRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "station_id":
			query = query.Where("station_id = ?", value)
		case "tax_payer_type_id":
			query = query.Where("tax_payer_type_id = ?", value)
		case "commodity_id":
			query = query.Where("commodity_id = ?", value)
		}
	}

	return query
}

// Ensure GormTaxRepository implements TaxRepository
var _ tariff.TaxRepository = (*GormTaxRepository)(nil)
