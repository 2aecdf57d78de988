package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
)

// ChangeTruckService swaps the truck on an open declaration, for
// breakdowns and reloads mid-route. The substitution and its audit
// record are written atomically.
type ChangeTruckService struct {
	txScope TransactionScope
}

// NewChangeTruckService creates a new ChangeTruckService
func NewChangeTruckService(txScope TransactionScope) *ChangeTruckService {
	return &ChangeTruckService{txScope: txScope}
}

// ChangeTruck replaces the truck on an open journey with the truck
// identified by plate. The replacement must be registered and must not
// be carrying an open journey of its own.
func (s *ChangeTruckService) ChangeTruck(ctx context.Context, req ChangeTruckRequest, operatorID uuid.UUID) (*JourneyResponse, error) {
	var result *JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.TruckJourneyRepo().FindByIDForUpdate(ctx, req.JourneyID)
		if err != nil {
			return fmt.Errorf("resolving journey: %w", err)
		}

		replacement, err := repos.TruckRepo().FindByPlateNumber(ctx, req.NewPlate)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("TRUCK_NOT_REGISTERED", "The replacement truck is not registered")
			}
			return err
		}

		if _, err := repos.TruckJourneyRepo().FindOpenByTruck(ctx, replacement.ID); err == nil {
			return shared.NewDomainError("TRUCK_BUSY", "The replacement truck already has an open declaration")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		originalTruckID := journey.TruckID
		if err := journey.SubstituteTruck(replacement.ID); err != nil {
			return err
		}

		change, err := checkpoint.NewTruckChange(
			journey.ID, originalTruckID, replacement.ID,
			req.StationID, s.latestStation(ctx, repos, journey.ID),
			req.Reason, operatorID,
		)
		if err != nil {
			return err
		}
		if err := repos.TruckChangeRepo().Save(ctx, change); err != nil {
			return err
		}
		if err := repos.TruckJourneyRepo().Save(ctx, journey); err != nil {
			return err
		}

		resp := ToTruckJourneyResponse(journey)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// latestStation returns the station of the journey's most recent
// checkin, or nil when it has none yet.
func (s *ChangeTruckService) latestStation(ctx context.Context, repos TransactionalRepositories, journeyID uuid.UUID) *uuid.UUID {
	checkins, err := repos.CheckinRepo().FindByJourney(ctx, journeyID, checkpoint.JourneyKindTruck)
	if err != nil || len(checkins) == 0 {
		return nil
	}
	latest := checkins[0]
	for _, c := range checkins[1:] {
		if !c.CheckinTime.Before(latest.CheckinTime) {
			latest = c
		}
	}
	stationID := latest.StationID
	return &stationID
}
