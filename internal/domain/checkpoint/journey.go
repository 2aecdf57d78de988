package checkpoint

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// JourneyStatus represents the lifecycle state of a journey
type JourneyStatus string

const (
	JourneyStatusPending   JourneyStatus = "PENDING"
	JourneyStatusOnGoing   JourneyStatus = "ON_GOING"
	JourneyStatusCompleted JourneyStatus = "COMPLETED"
	JourneyStatusCancelled JourneyStatus = "CANCELLED"
)

// JourneyKind distinguishes the two journey variants
type JourneyKind string

const (
	JourneyKindTruck  JourneyKind = "truck"
	JourneyKindWalkIn JourneyKind = "walk_in"
)

// TrackedJourney is the capability set the sequencing logic needs from
// either journey variant. Truck-backed declarations and walk-in journeys
// both implement it, so there is exactly one validator for both.
type TrackedJourney interface {
	GetID() uuid.UUID
	Kind() JourneyKind
	GetStatus() JourneyStatus
	// BoundPathID returns the path the journey follows, once known
	BoundPathID() (uuid.UUID, bool)
	// MovingEntityID identifies the tracked entity: the truck for a
	// declaration, the exporter for a walk-in journey
	MovingEntityID() uuid.UUID
	IsOpen() bool
	IsClosed() bool
	MarkOnGoing()
	Complete() error
	Cancel() error
}

// NewJourneyNumber returns a short URL-safe identifier for a journey
func NewJourneyNumber() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// TruckJourney is a truck-backed declaration moving goods along a path.
// It may be created bare from a weighbridge reading, with exporter,
// commodity and path filled in later by a controller.
type TruckJourney struct {
	shared.BaseAggregateRoot
	DeclarationNumber string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	TruckID           uuid.UUID     `gorm:"type:uuid;not null;index"`
	DriverID          *uuid.UUID    `gorm:"type:uuid"`
	ExporterID        *uuid.UUID    `gorm:"type:uuid;index"`
	CommodityID       *uuid.UUID    `gorm:"type:uuid"`
	PathID            *uuid.UUID    `gorm:"type:uuid;index"`
	Status            JourneyStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// TableName returns the table name for GORM
func (TruckJourney) TableName() string {
	return "truck_journeys"
}

// NewTruckJourney creates a new declaration for a truck. Callers must
// ensure the truck has no other open journey before saving.
func NewTruckJourney(truckID uuid.UUID) (*TruckJourney, error) {
	if truckID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRUCK", "Truck is required")
	}

	journey := &TruckJourney{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DeclarationNumber: NewJourneyNumber(),
		TruckID:           truckID,
		Status:            JourneyStatusPending,
	}

	journey.AddDomainEvent(NewJourneyOpenedEvent(journey))

	return journey, nil
}

// GetID returns the journey's identifier
func (j *TruckJourney) GetID() uuid.UUID { return j.ID }

// Kind returns the journey variant
func (j *TruckJourney) Kind() JourneyKind { return JourneyKindTruck }

// GetStatus returns the journey's lifecycle state
func (j *TruckJourney) GetStatus() JourneyStatus { return j.Status }

// BoundPathID returns the bound path, once a controller has assigned it
func (j *TruckJourney) BoundPathID() (uuid.UUID, bool) {
	if j.PathID == nil {
		return uuid.Nil, false
	}
	return *j.PathID, true
}

// MovingEntityID identifies the truck being tracked
func (j *TruckJourney) MovingEntityID() uuid.UUID { return j.TruckID }

// IsOpen reports whether the journey is still in progress
func (j *TruckJourney) IsOpen() bool {
	return j.Status == JourneyStatusPending || j.Status == JourneyStatusOnGoing
}

// IsClosed reports whether the journey has reached a terminal state
func (j *TruckJourney) IsClosed() bool { return !j.IsOpen() }

// AssignDetails fills in the cargo details recorded by a controller.
// The path binds exactly once; reassigning it is an integrity error.
func (j *TruckJourney) AssignDetails(driverID, exporterID, commodityID, pathID uuid.UUID) error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Cannot assign details to a closed journey")
	}
	if pathID == uuid.Nil || exporterID == uuid.Nil || commodityID == uuid.Nil {
		return shared.NewDomainError("INVALID_DETAILS", "Exporter, commodity and path are all required")
	}
	if j.PathID != nil && *j.PathID != pathID {
		return shared.NewDomainError("PATH_ALREADY_BOUND", "Journey is already bound to a different path")
	}

	j.ExporterID = &exporterID
	j.CommodityID = &commodityID
	j.PathID = &pathID
	if driverID != uuid.Nil {
		j.DriverID = &driverID
	}
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}

// MarkOnGoing moves the journey into ON_GOING. Checkin creation keeps
// the journey in this state until completion.
func (j *TruckJourney) MarkOnGoing() {
	if j.Status == JourneyStatusPending {
		j.Status = JourneyStatusOnGoing
		j.UpdatedAt = time.Now()
		j.IncrementVersion()
	}
}

// Complete closes the journey at the path's terminal station
func (j *TruckJourney) Complete() error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Journey is already closed")
	}

	j.Status = JourneyStatusCompleted
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJourneyCompletedEvent(j.ID, JourneyKindTruck))

	return nil
}

// Cancel aborts an open journey
func (j *TruckJourney) Cancel() error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Journey is already closed")
	}

	j.Status = JourneyStatusCancelled
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}

// SubstituteTruck rewrites the truck reference mid-journey. This is a
// compensating action for a broken-down truck, not a new journey; callers
// must verify the replacement has no open journey of its own and record a
// TruckChange alongside.
func (j *TruckJourney) SubstituteTruck(newTruckID uuid.UUID) error {
	if newTruckID == uuid.Nil {
		return shared.NewDomainError("INVALID_TRUCK", "Replacement truck is required")
	}
	if newTruckID == j.TruckID {
		return shared.NewDomainError("SAME_TRUCK", "The replacement truck cannot be the same as the original truck")
	}
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Cannot change the truck of a completed or cancelled journey")
	}

	j.TruckID = newTruckID
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}

// WalkInJourney tracks a truckless taxpayer carrying goods through a
// path. It starts PENDING until a controller assigns the commodity and
// path, then follows the same lifecycle as a declaration.
type WalkInJourney struct {
	shared.BaseAggregateRoot
	Number      string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	ExporterID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	CommodityID *uuid.UUID    `gorm:"type:uuid"`
	PathID      *uuid.UUID    `gorm:"type:uuid;index"`
	Status      JourneyStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// TableName returns the table name for GORM
func (WalkInJourney) TableName() string {
	return "walk_in_journeys"
}

// NewWalkInJourney creates a new walk-in journey for an exporter.
// Callers must ensure the exporter has no other open walk-in journey.
func NewWalkInJourney(exporterID uuid.UUID) (*WalkInJourney, error) {
	if exporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPORTER", "Exporter is required")
	}

	journey := &WalkInJourney{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            NewJourneyNumber(),
		ExporterID:        exporterID,
		Status:            JourneyStatusPending,
	}

	journey.AddDomainEvent(NewWalkInJourneyOpenedEvent(journey))

	return journey, nil
}

// GetID returns the journey's identifier
func (j *WalkInJourney) GetID() uuid.UUID { return j.ID }

// Kind returns the journey variant
func (j *WalkInJourney) Kind() JourneyKind { return JourneyKindWalkIn }

// GetStatus returns the journey's lifecycle state
func (j *WalkInJourney) GetStatus() JourneyStatus { return j.Status }

// BoundPathID returns the bound path, once a controller has assigned it
func (j *WalkInJourney) BoundPathID() (uuid.UUID, bool) {
	if j.PathID == nil {
		return uuid.Nil, false
	}
	return *j.PathID, true
}

// MovingEntityID identifies the exporter being tracked
func (j *WalkInJourney) MovingEntityID() uuid.UUID { return j.ExporterID }

// IsOpen reports whether the journey is still in progress
func (j *WalkInJourney) IsOpen() bool {
	return j.Status == JourneyStatusPending || j.Status == JourneyStatusOnGoing
}

// IsClosed reports whether the journey has reached a terminal state
func (j *WalkInJourney) IsClosed() bool { return !j.IsOpen() }

// AssignCargo fills in the commodity and path recorded by a controller
func (j *WalkInJourney) AssignCargo(commodityID, pathID uuid.UUID) error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Cannot assign cargo to a closed journey")
	}
	if commodityID == uuid.Nil || pathID == uuid.Nil {
		return shared.NewDomainError("INVALID_DETAILS", "Commodity and path are both required")
	}
	if j.PathID != nil && *j.PathID != pathID {
		return shared.NewDomainError("PATH_ALREADY_BOUND", "Journey is already bound to a different path")
	}

	j.CommodityID = &commodityID
	j.PathID = &pathID
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}

// MarkOnGoing moves the journey into ON_GOING
func (j *WalkInJourney) MarkOnGoing() {
	if j.Status == JourneyStatusPending {
		j.Status = JourneyStatusOnGoing
		j.UpdatedAt = time.Now()
		j.IncrementVersion()
	}
}

// Complete closes the journey at the path's terminal station
func (j *WalkInJourney) Complete() error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Journey is already closed")
	}

	j.Status = JourneyStatusCompleted
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJourneyCompletedEvent(j.ID, JourneyKindWalkIn))

	return nil
}

// Cancel aborts an open journey
func (j *WalkInJourney) Cancel() error {
	if j.IsClosed() {
		return shared.NewDomainError("JOURNEY_CLOSED", "Journey is already closed")
	}

	j.Status = JourneyStatusCancelled
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}
