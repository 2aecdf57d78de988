package checkpoint

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// StationRepository defines the interface for station persistence
type StationRepository interface {
	// FindByID finds a station by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Station, error)

	// FindByMachineNumber finds the station hosting a weighbridge device
	FindByMachineNumber(ctx context.Context, machineNumber string) (*Station, error)

	// FindByName finds a station by name
	FindByName(ctx context.Context, name string) (*Station, error)

	// FindAll finds all stations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Station, error)

	// Save creates or updates a station
	Save(ctx context.Context, station *Station) error

	// Delete deletes a station
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PathRepository defines the interface for path persistence
type PathRepository interface {
	// FindByID finds a path with its ordered stations
	FindByID(ctx context.Context, id uuid.UUID) (*Path, error)

	// FindAll finds all paths matching the filter, stations preloaded
	FindAll(ctx context.Context, filter shared.Filter) ([]Path, error)

	// FindBySequenceKey finds a path carrying exactly this station sequence.
	// Used to reject duplicate sequences across paths.
	FindBySequenceKey(ctx context.Context, key string) (*Path, error)

	// HasOpenJourneys reports whether any PENDING or ON_GOING journey,
	// truck-backed or walk-in, references the path. Paths with open
	// journeys are immutable.
	HasOpenJourneys(ctx context.Context, pathID uuid.UUID) (bool, error)

	// Save creates or updates a path and its stations
	Save(ctx context.Context, path *Path) error

	// Delete deletes a path
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts paths matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TruckJourneyRepository defines the interface for declaration persistence
type TruckJourneyRepository interface {
	// FindByID finds a journey by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TruckJourney, error)

	// FindByIDForUpdate finds a journey and takes a row lock on it for
	// the duration of the surrounding transaction. All read-validate-write
	// sequences over a journey and its checkins go through this.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*TruckJourney, error)

	// FindByDeclarationNumber finds a journey by its public number
	FindByDeclarationNumber(ctx context.Context, number string) (*TruckJourney, error)

	// FindLatestByTruck finds the truck's most recently created journey
	FindLatestByTruck(ctx context.Context, truckID uuid.UUID) (*TruckJourney, error)

	// FindOpenByTruck finds the truck's open (PENDING or ON_GOING) journey
	FindOpenByTruck(ctx context.Context, truckID uuid.UUID) (*TruckJourney, error)

	// FindByStatus finds journeys in a given lifecycle state
	FindByStatus(ctx context.Context, status JourneyStatus, filter shared.Filter) ([]TruckJourney, error)

	// FindAll finds all journeys matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TruckJourney, error)

	// Save creates or updates a journey
	Save(ctx context.Context, journey *TruckJourney) error

	// Count counts journeys matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// WalkInJourneyRepository defines the interface for walk-in journey persistence
type WalkInJourneyRepository interface {
	// FindByID finds a journey by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*WalkInJourney, error)

	// FindByIDForUpdate finds a journey and takes a row lock on it
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*WalkInJourney, error)

	// FindByNumber finds a journey by its public number
	FindByNumber(ctx context.Context, number string) (*WalkInJourney, error)

	// FindLatestByExporter finds the exporter's most recently created journey
	FindLatestByExporter(ctx context.Context, exporterID uuid.UUID) (*WalkInJourney, error)

	// FindOpenByExporter finds the exporter's open journey
	FindOpenByExporter(ctx context.Context, exporterID uuid.UUID) (*WalkInJourney, error)

	// FindByStatus finds journeys in a given lifecycle state
	FindByStatus(ctx context.Context, status JourneyStatus, filter shared.Filter) ([]WalkInJourney, error)

	// FindAll finds all journeys matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]WalkInJourney, error)

	// Save creates or updates a journey
	Save(ctx context.Context, journey *WalkInJourney) error

	// Count counts journeys matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CheckinRepository defines the interface for checkin persistence
type CheckinRepository interface {
	// FindByID finds a checkin by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Checkin, error)

	// FindByJourney finds all checkins of a journey in insertion order
	FindByJourney(ctx context.Context, journeyID uuid.UUID, kind JourneyKind) ([]Checkin, error)

	// FindByJourneyAndStation finds the journey's checkin at one station
	FindByJourneyAndStation(ctx context.Context, journeyID uuid.UUID, kind JourneyKind, stationID uuid.UUID) (*Checkin, error)

	// FindByReceiptNumber finds a checkin by its payment receipt number
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*Checkin, error)

	// FindUnsettledByStation lists checkins awaiting payment at a station
	FindUnsettledByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]Checkin, error)

	// Save creates or updates a checkin. Creation relies on the unique
	// (journey, station) constraint as the final guard against duplicate
	// visits racing past validation.
	Save(ctx context.Context, checkin *Checkin) error

	// Count counts checkins matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ManualPaymentRepository defines the interface for manual payment records
type ManualPaymentRepository interface {
	// FindByCheckin finds the manual payment recorded for a checkin
	FindByCheckin(ctx context.Context, checkinID uuid.UUID) (*ManualPayment, error)

	// Save creates a manual payment record
	Save(ctx context.Context, payment *ManualPayment) error
}

// TruckChangeRepository defines the interface for truck change audit records
type TruckChangeRepository interface {
	// FindByJourney lists all truck changes recorded for a journey
	FindByJourney(ctx context.Context, journeyID uuid.UUID) ([]TruckChange, error)

	// FindAll finds all truck changes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TruckChange, error)

	// Save creates a truck change record
	Save(ctx context.Context, change *TruckChange) error
}
