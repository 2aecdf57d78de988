// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCheckpointStateProvider implements CheckpointStateProvider using GORM.
// It queries the journey and checkin tables directly for aggregated metrics.
type GormCheckpointStateProvider struct {
	db *gorm.DB
}

// NewGormCheckpointStateProvider creates a new GormCheckpointStateProvider.
func NewGormCheckpointStateProvider(db *gorm.DB) *GormCheckpointStateProvider {
	return &GormCheckpointStateProvider{db: db}
}

// GetOpenJourneyCounts returns the number of journeys still progressing
// through their path, keyed by journey kind.
func (p *GormCheckpointStateProvider) GetOpenJourneyCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 2)

	var truckCount int64
	err := p.db.WithContext(ctx).
		Table("truck_journeys").
		Where("status IN ?", []string{"PENDING", "ON_GOING"}).
		Count(&truckCount).Error
	if err != nil {
		return nil, err
	}
	counts["truck"] = truckCount

	var walkInCount int64
	err = p.db.WithContext(ctx).
		Table("walk_in_journeys").
		Where("status IN ?", []string{"PENDING", "ON_GOING"}).
		Count(&walkInCount).Error
	if err != nil {
		return nil, err
	}
	counts["walk_in"] = walkInCount

	return counts, nil
}

// GetUnpaidCheckinCountByStation returns the number of unpaid checkins per
// station. Stations without unpaid checkins are omitted.
func (p *GormCheckpointStateProvider) GetUnpaidCheckinCountByStation(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		StationID   uuid.UUID `gorm:"column:station_id"`
		UnpaidCount int64     `gorm:"column:unpaid_count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("checkins").
		Select("station_id, COUNT(*) as unpaid_count").
		Where("status = ?", "unpaid").
		Group("station_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.StationID] = r.UnpaidCount
	}

	return m, nil
}
