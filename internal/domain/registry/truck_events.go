package registry

import (
	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTruck = "Truck"

// Event type constants
const (
	EventTypeTruckRegistered   = "TruckRegistered"
	EventTypeTruckPlateChanged = "TruckPlateChanged"
)

// TruckRegisteredEvent is published when a new truck is registered
type TruckRegisteredEvent struct {
	shared.BaseDomainEvent
	TruckID     uuid.UUID `json:"truck_id"`
	PlateNumber string    `json:"plate_number"`
}

// NewTruckRegisteredEvent creates a new TruckRegisteredEvent
func NewTruckRegisteredEvent(truck *Truck) *TruckRegisteredEvent {
	return &TruckRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTruckRegistered, AggregateTypeTruck, truck.ID),
		TruckID:         truck.ID,
		PlateNumber:     truck.PlateNumber,
	}
}

// TruckPlateChangedEvent is published when a truck's plate number changes
type TruckPlateChangedEvent struct {
	shared.BaseDomainEvent
	TruckID  uuid.UUID `json:"truck_id"`
	OldPlate string    `json:"old_plate"`
	NewPlate string    `json:"new_plate"`
}

// NewTruckPlateChangedEvent creates a new TruckPlateChangedEvent
func NewTruckPlateChangedEvent(truck *Truck, oldPlate string) *TruckPlateChangedEvent {
	return &TruckPlateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTruckPlateChanged, AggregateTypeTruck, truck.ID),
		TruckID:         truck.ID,
		OldPlate:        oldPlate,
		NewPlate:        truck.PlateNumber,
	}
}
