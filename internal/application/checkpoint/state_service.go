package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
	"github.com/shopspring/decimal"
)

// StateService serves the pre-payment checkpoint view to controllers.
// It is read-mostly, with one write side effect: the first time a
// controller opens a pending checkin, the applicable rate, unit price
// and the controller's identity are stamped onto it.
type StateService struct {
	txScope TransactionScope
}

// NewStateService creates a new StateService
func NewStateService(txScope TransactionScope) *StateService {
	return &StateService{txScope: txScope}
}

// GetTruckState returns the checkpoint state for the truck's latest
// journey at the operator's station. Sequencing declines and missing
// tariff configuration come back as verdict data, not errors.
func (s *StateService) GetTruckState(ctx context.Context, plateNumber string, stationID, operatorID uuid.UUID) (*CheckpointState, error) {
	var state *CheckpointState
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		truck, err := repos.TruckRepo().FindByPlateNumber(ctx, plateNumber)
		if err != nil {
			return fmt.Errorf("resolving truck %s: %w", plateNumber, err)
		}

		journey, err := repos.TruckJourneyRepo().FindLatestByTruck(ctx, truck.ID)
		if err != nil {
			return fmt.Errorf("resolving journey for truck %s: %w", plateNumber, err)
		}

		journey, err = repos.TruckJourneyRepo().FindByIDForUpdate(ctx, journey.ID)
		if err != nil {
			return err
		}

		jr := ToTruckJourneyResponse(journey)
		state, err = s.buildState(ctx, repos, journey, &jr, stationID, operatorID, func(ctx context.Context) (*tariff.Tax, int64, error) {
			return s.truckTariff(ctx, repos, journey, stationID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// GetWalkInState returns the checkpoint state for the exporter's latest
// walk-in journey at the operator's station.
func (s *StateService) GetWalkInState(ctx context.Context, exporterUniqueID string, stationID, operatorID uuid.UUID) (*CheckpointState, error) {
	var state *CheckpointState
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exporter, err := repos.ExporterRepo().FindByUniqueID(ctx, exporterUniqueID)
		if err != nil {
			return fmt.Errorf("resolving exporter %s: %w", exporterUniqueID, err)
		}

		journey, err := repos.WalkInJourneyRepo().FindLatestByExporter(ctx, exporter.ID)
		if err != nil {
			return fmt.Errorf("resolving journey for exporter %s: %w", exporterUniqueID, err)
		}

		journey, err = repos.WalkInJourneyRepo().FindByIDForUpdate(ctx, journey.ID)
		if err != nil {
			return err
		}

		jr := ToWalkInJourneyResponse(journey)
		state, err = s.buildState(ctx, repos, journey, &jr, stationID, operatorID, func(ctx context.Context) (*tariff.Tax, int64, error) {
			return s.walkInTariff(ctx, repos, journey, exporter, stationID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// tariffLookup resolves the applicable tax and scaled unit price for the
// journey at the current station
type tariffLookup func(ctx context.Context) (*tariff.Tax, int64, error)

func (s *StateService) buildState(ctx context.Context, repos TransactionalRepositories, journey checkpoint.TrackedJourney, jr *JourneyResponse, stationID, operatorID uuid.UUID, lookup tariffLookup) (*CheckpointState, error) {
	checkins, err := repos.CheckinRepo().FindByJourney(ctx, journey.GetID(), journey.Kind())
	if err != nil {
		return nil, err
	}

	var current *checkpoint.Checkin
	previous := make([]CheckinResponse, 0, len(checkins))
	for i := range checkins {
		if checkins[i].StationID == stationID {
			current = &checkins[i]
		} else {
			previous = append(previous, ToCheckinResponse(&checkins[i]))
		}
	}
	sort.Slice(previous, func(i, j int) bool { return previous[i].CheckinTime.Before(previous[j].CheckinTime) })

	state := &CheckpointState{Journey: jr, PreviousCheckins: previous}

	if current == nil {
		// no weighbridge reading here yet: answer with what the validator
		// would say so the controller can direct the driver
		path, err := s.statePath(ctx, repos, journey)
		if err != nil {
			return nil, err
		}
		decision := checkpoint.ValidateSequence(journey, path, checkins, checkpoint.Candidate{StationID: stationID})
		state.Verdict = decision.Verdict
		state.Message = VerdictMessage(decision.Verdict)
		if decision.Verdict.Allowed() {
			state.Message = "Proceed to the weighbridge for a reading"
		}
		return state, nil
	}

	if current.BlocksProgression() && !current.IsStamped() {
		tax, unitPrice, err := lookup(ctx)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrNoTaxConfigured) {
				state.Verdict = "NO_TAX_CONFIGURED"
				state.Message = "No tax is configured for this station, taxpayer type and commodity"
				cr := ToCheckinResponse(current)
				state.CurrentCheckin = &cr
				return state, nil
			}
			return nil, err
		}

		current.StampTariff(tax.Percentage, unitPrice, operatorID)

		assessment, err := tariff.Assess(current.NetWeight, previousWeight(checkins, current), unitPrice, tax.Percentage, current.Deduction)
		if err != nil {
			return nil, err
		}
		if err := current.RecordAssessment(assessment.Owed); err != nil {
			return nil, err
		}
		if err := repos.CheckinRepo().Save(ctx, current); err != nil {
			return nil, err
		}
	}

	cr := ToCheckinResponse(current)
	state.CurrentCheckin = &cr
	return state, nil
}

// previousWeight returns the net weight of the latest checkin before the
// current one, zero when the current checkin opened the journey.
func previousWeight(checkins []checkpoint.Checkin, current *checkpoint.Checkin) decimal.Decimal {
	prev := decimal.Zero
	var found bool
	var latest *checkpoint.Checkin
	for i := range checkins {
		c := &checkins[i]
		if c.ID == current.ID {
			continue
		}
		if c.CheckinTime.After(current.CheckinTime) {
			continue
		}
		if !found || !c.CheckinTime.Before(latest.CheckinTime) {
			latest = c
			found = true
		}
	}
	if found {
		prev = latest.NetWeight
	}
	return prev
}

func (s *StateService) statePath(ctx context.Context, repos TransactionalRepositories, journey checkpoint.TrackedJourney) (*checkpoint.Path, error) {
	pathID, ok := journey.BoundPathID()
	if !ok {
		return nil, nil
	}
	return repos.PathRepo().FindByID(ctx, pathID)
}

// truckTariff resolves (station, taxpayer type, commodity) for a truck
// journey. Incomplete journeys surface as blocking conditions.
func (s *StateService) truckTariff(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.TruckJourney, stationID uuid.UUID) (*tariff.Tax, int64, error) {
	if journey.CommodityID == nil || journey.ExporterID == nil {
		return nil, 0, shared.ErrNoTaxConfigured
	}
	exporter, err := repos.ExporterRepo().FindByID(ctx, *journey.ExporterID)
	if err != nil {
		return nil, 0, err
	}
	return s.resolveTariff(ctx, repos, stationID, exporter, *journey.CommodityID)
}

func (s *StateService) walkInTariff(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.WalkInJourney, exporter *registry.Exporter, stationID uuid.UUID) (*tariff.Tax, int64, error) {
	if journey.CommodityID == nil {
		return nil, 0, shared.ErrNoTaxConfigured
	}
	return s.resolveTariff(ctx, repos, stationID, exporter, *journey.CommodityID)
}

func (s *StateService) resolveTariff(ctx context.Context, repos TransactionalRepositories, stationID uuid.UUID, exporter *registry.Exporter, commodityID uuid.UUID) (*tariff.Tax, int64, error) {
	if exporter.TaxPayerTypeID == nil {
		return nil, 0, shared.ErrNoTaxConfigured
	}

	tax, err := repos.TaxRepo().FindApplicable(ctx, stationID, *exporter.TaxPayerTypeID, commodityID)
	if err != nil {
		return nil, 0, err
	}

	commodity, err := repos.CommodityRepo().FindByID(ctx, commodityID)
	if err != nil {
		return nil, 0, err
	}

	return tax, commodity.UnitPrice, nil
}
