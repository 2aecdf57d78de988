package checkpoint

import (
	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// TruckChange is the audit record of a mid-journey truck substitution.
// It captures the before/after trucks and the station context so the
// compensating action can be reviewed later.
type TruckChange struct {
	shared.BaseAggregateRoot
	JourneyID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OriginalTruckID uuid.UUID  `gorm:"type:uuid;not null"`
	NewTruckID      uuid.UUID  `gorm:"type:uuid;not null"`
	StationID       uuid.UUID  `gorm:"type:uuid;not null"` // where the change was recorded
	LatestStationID *uuid.UUID `gorm:"type:uuid"`          // last station the journey had checked in at
	Reason          string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TruckChange) TableName() string {
	return "truck_changes"
}

// NewTruckChange records a truck substitution for a journey
func NewTruckChange(journeyID, originalTruckID, newTruckID, stationID uuid.UUID, latestStationID *uuid.UUID, reason string, operatorID uuid.UUID) (*TruckChange, error) {
	if journeyID == uuid.Nil || originalTruckID == uuid.Nil || newTruckID == uuid.Nil || stationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRUCK_CHANGE", "Journey, both trucks and the station are all required")
	}
	if originalTruckID == newTruckID {
		return nil, shared.NewDomainError("SAME_TRUCK", "The replacement truck cannot be the same as the original truck")
	}

	return &TruckChange{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(operatorID),
		JourneyID:         journeyID,
		OriginalTruckID:   originalTruckID,
		NewTruckID:        newTruckID,
		StationID:         stationID,
		LatestStationID:   latestStationID,
		Reason:            reason,
	}, nil
}
