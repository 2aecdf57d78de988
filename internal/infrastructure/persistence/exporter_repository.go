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

// GormExporterRepository implements ExporterRepository using GORM
type GormExporterRepository struct {
	db *gorm.DB
}

// NewGormExporterRepository creates a new GormExporterRepository
func NewGormExporterRepository(db *gorm.DB) *GormExporterRepository {
	return &GormExporterRepository{db: db}
}

// FindByID finds an exporter by its ID
func (r *GormExporterRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Exporter, error) {
	var exporter registry.Exporter
	if err := r.db.WithContext(ctx).First(&exporter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exporter, nil
}

// FindByUniqueID finds an exporter by its public identifier
func (r *GormExporterRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*registry.Exporter, error) {
	var exporter registry.Exporter
	if err := r.db.WithContext(ctx).
		Where("unique_id = ?", strings.TrimSpace(uniqueID)).
		First(&exporter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exporter, nil
}

// FindByTIN finds an exporter by tax identification number
func (r *GormExporterRepository) FindByTIN(ctx context.Context, tin string) (*registry.Exporter, error) {
	var exporter registry.Exporter
	if err := r.db.WithContext(ctx).
		Where("tin = ?", strings.TrimSpace(tin)).
		First(&exporter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exporter, nil
}

// FindAll finds all exporters matching the filter
func (r *GormExporterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Exporter, error) {
	var exporters []registry.Exporter
	query := r.applyFilter(r.db.WithContext(ctx).Model(&registry.Exporter{}), filter)

	if err := query.Find(&exporters).Error; err != nil {
		return nil, err
	}
	return exporters, nil
}

// Save creates or updates an exporter
func (r *GormExporterRepository) Save(ctx context.Context, exporter *registry.Exporter) error {
	if err := r.db.WithContext(ctx).Save(exporter).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes an exporter
func (r *GormExporterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.Exporter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts exporters matching the filter
func (r *GormExporterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&registry.Exporter{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormExporterRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("first_name ASC, last_name ASC")
	}

	return query
}

// applySearch applies search and field filters without pagination
func (r *GormExporterRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR unique_id ILIKE ? OR tin ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "tax_payer_type_id":
			query = query.Where("tax_payer_type_id = ?", value)
		case "gender":
			query = query.Where("gender = ?", value)
		}
	}

	return query
}

// Ensure GormExporterRepository implements ExporterRepository
var _ registry.ExporterRepository = (*GormExporterRepository)(nil)
