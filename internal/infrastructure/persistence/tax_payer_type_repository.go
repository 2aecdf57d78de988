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

// GormTaxPayerTypeRepository implements TaxPayerTypeRepository using GORM
type GormTaxPayerTypeRepository struct {
	db *gorm.DB
}

// NewGormTaxPayerTypeRepository creates a new GormTaxPayerTypeRepository
func NewGormTaxPayerTypeRepository(db *gorm.DB) *GormTaxPayerTypeRepository {
	return &GormTaxPayerTypeRepository{db: db}
}

// FindByID finds a taxpayer type by its ID
func (r *GormTaxPayerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.TaxPayerType, error) {
	var t tariff.TaxPayerType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByName finds a taxpayer type by name
func (r *GormTaxPayerTypeRepository) FindByName(ctx context.Context, name string) (*tariff.TaxPayerType, error) {
	var t tariff.TaxPayerType
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds all taxpayer types matching the filter
func (r *GormTaxPayerTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.TaxPayerType, error) {
	var types []tariff.TaxPayerType
	query := r.db.WithContext(ctx).Model(&tariff.TaxPayerType{})

	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// Save creates or updates a taxpayer type
func (r *GormTaxPayerTypeRepository) Save(ctx context.Context, t *tariff.TaxPayerType) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a taxpayer type
func (r *GormTaxPayerTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tariff.TaxPayerType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTaxPayerTypeRepository implements TaxPayerTypeRepository
var _ tariff.TaxPayerTypeRepository = (*GormTaxPayerTypeRepository)(nil)
