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

// GormPathRepository implements PathRepository using GORM
type GormPathRepository struct {
	db *gorm.DB
}

// NewGormPathRepository creates a new GormPathRepository
func NewGormPathRepository(db *gorm.DB) *GormPathRepository {
	return &GormPathRepository{db: db}
}

// FindByID finds a path with its ordered stations
func (r *GormPathRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkpoint.Path, error) {
	var path checkpoint.Path
	if err := r.db.WithContext(ctx).
		Preload("Stations").
		First(&path, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &path, nil
}

// FindAll finds all paths matching the filter, stations preloaded
func (r *GormPathRepository) FindAll(ctx context.Context, filter shared.Filter) ([]checkpoint.Path, error) {
	var paths []checkpoint.Path
	query := r.applyFilter(r.db.WithContext(ctx).Model(&checkpoint.Path{}).Preload("Stations"), filter)

	if err := query.Find(&paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// FindBySequenceKey finds a path carrying exactly this station sequence
func (r *GormPathRepository) FindBySequenceKey(ctx context.Context, key string) (*checkpoint.Path, error) {
	var path checkpoint.Path
	if err := r.db.WithContext(ctx).
		Preload("Stations").
		First(&path, "sequence_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &path, nil
}

// HasOpenJourneys reports whether any PENDING or ON_GOING journey,
// truck-backed or walk-in, references the path
func (r *GormPathRepository) HasOpenJourneys(ctx context.Context, pathID uuid.UUID) (bool, error) {
	openStatuses := []checkpoint.JourneyStatus{
		checkpoint.JourneyStatusPending,
		checkpoint.JourneyStatusOnGoing,
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&checkpoint.TruckJourney{}).
		Where("path_id = ? AND status IN ?", pathID, openStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&checkpoint.WalkInJourney{}).
		Where("path_id = ? AND status IN ?", pathID, openStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a path and its stations. Station rows are
// replaced wholesale so removals and reorders take effect. The unique
// sequence key index backstops the duplicate-sequence guard against
// concurrent writers; losing that race surfaces as the domain error.
func (r *GormPathRepository) Save(ctx context.Context, path *checkpoint.Path) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stations").Save(path).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateSequence
			}
			return err
		}
		if err := tx.Where("path_id = ?", path.ID).Delete(&checkpoint.PathStation{}).Error; err != nil {
			return err
		}
		if len(path.Stations) == 0 {
			return nil
		}
		return tx.Create(&path.Stations).Error
	})
}

// Delete deletes a path; its station rows cascade
func (r *GormPathRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&checkpoint.Path{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts paths matching the filter
func (r *GormPathRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&checkpoint.Path{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPathRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormPathRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	return query
}

// Ensure GormPathRepository implements PathRepository
var _ checkpoint.PathRepository = (*GormPathRepository)(nil)
