package checkpoint

import (
	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeTruckJourney  = "TruckJourney"
	AggregateTypeWalkInJourney = "WalkInJourney"
	AggregateTypeCheckin       = "Checkin"
)

// Event type constants
const (
	EventTypeJourneyOpened    = "JourneyOpened"
	EventTypeJourneyCompleted = "JourneyCompleted"
	EventTypeCheckinRecorded  = "CheckinRecorded"
	EventTypeCheckinSettled   = "CheckinSettled"
	EventTypeTruckChanged     = "TruckChanged"
)

// JourneyOpenedEvent is published when a truck declaration is opened
type JourneyOpenedEvent struct {
	shared.BaseDomainEvent
	JourneyID         uuid.UUID `json:"journey_id"`
	DeclarationNumber string    `json:"declaration_number"`
	TruckID           uuid.UUID `json:"truck_id"`
}

// NewJourneyOpenedEvent creates a new JourneyOpenedEvent
func NewJourneyOpenedEvent(journey *TruckJourney) *JourneyOpenedEvent {
	return &JourneyOpenedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeJourneyOpened, AggregateTypeTruckJourney, journey.ID),
		JourneyID:         journey.ID,
		DeclarationNumber: journey.DeclarationNumber,
		TruckID:           journey.TruckID,
	}
}

// WalkInJourneyOpenedEvent is published when a walk-in journey is opened
type WalkInJourneyOpenedEvent struct {
	shared.BaseDomainEvent
	JourneyID  uuid.UUID `json:"journey_id"`
	Number     string    `json:"number"`
	ExporterID uuid.UUID `json:"exporter_id"`
}

// NewWalkInJourneyOpenedEvent creates a new WalkInJourneyOpenedEvent
func NewWalkInJourneyOpenedEvent(journey *WalkInJourney) *WalkInJourneyOpenedEvent {
	return &WalkInJourneyOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJourneyOpened, AggregateTypeWalkInJourney, journey.ID),
		JourneyID:       journey.ID,
		Number:          journey.Number,
		ExporterID:      journey.ExporterID,
	}
}

// JourneyCompletedEvent is published when either journey variant completes
type JourneyCompletedEvent struct {
	shared.BaseDomainEvent
	JourneyID uuid.UUID   `json:"journey_id"`
	Kind      JourneyKind `json:"kind"`
}

// NewJourneyCompletedEvent creates a new JourneyCompletedEvent
func NewJourneyCompletedEvent(journeyID uuid.UUID, kind JourneyKind) *JourneyCompletedEvent {
	aggType := AggregateTypeTruckJourney
	if kind == JourneyKindWalkIn {
		aggType = AggregateTypeWalkInJourney
	}
	return &JourneyCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJourneyCompleted, aggType, journeyID),
		JourneyID:       journeyID,
		Kind:            kind,
	}
}

// CheckinSettledEvent is published when a checkin is paid or passes
type CheckinSettledEvent struct {
	shared.BaseDomainEvent
	CheckinID uuid.UUID       `json:"checkin_id"`
	StationID uuid.UUID       `json:"station_id"`
	Status    CheckinStatus   `json:"status"`
	Owed      decimal.Decimal `json:"owed"`
}

// NewCheckinSettledEvent creates a new CheckinSettledEvent
func NewCheckinSettledEvent(checkin *Checkin) *CheckinSettledEvent {
	return &CheckinSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckinSettled, AggregateTypeCheckin, checkin.ID),
		CheckinID:       checkin.ID,
		StationID:       checkin.StationID,
		Status:          checkin.Status,
		Owed:            checkin.Owed,
	}
}
