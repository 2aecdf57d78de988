package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
)

// JourneyService handles the controller-side journey operations: filling
// in declaration details after the weighbridge opens a journey, cancelling
// journeys and listing them by lifecycle state.
type JourneyService struct {
	txScope TransactionScope
}

// NewJourneyService creates a new JourneyService
func NewJourneyService(txScope TransactionScope) *JourneyService {
	return &JourneyService{txScope: txScope}
}

// CompleteTruckDeclaration assigns the driver, exporter, commodity and
// path to a pending declaration. The path binds once; a second call with
// a different path is rejected.
func (s *JourneyService) CompleteTruckDeclaration(ctx context.Context, journeyID uuid.UUID, req CompleteTruckJourneyRequest) (*JourneyResponse, error) {
	var result *JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.TruckJourneyRepo().FindByIDForUpdate(ctx, journeyID)
		if err != nil {
			return fmt.Errorf("resolving journey: %w", err)
		}

		if err := s.verifyReferences(ctx, repos, req.ExporterID, req.CommodityID, req.PathID); err != nil {
			return err
		}
		if err := journey.AssignDetails(req.DriverID, req.ExporterID, req.CommodityID, req.PathID); err != nil {
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

// CompleteWalkInJourney assigns the commodity and path to a pending
// walk-in journey.
func (s *JourneyService) CompleteWalkInJourney(ctx context.Context, journeyID uuid.UUID, req CompleteWalkInJourneyRequest) (*JourneyResponse, error) {
	var result *JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.WalkInJourneyRepo().FindByIDForUpdate(ctx, journeyID)
		if err != nil {
			return fmt.Errorf("resolving journey: %w", err)
		}

		if _, err := repos.CommodityRepo().FindByID(ctx, req.CommodityID); err != nil {
			return referenceError(err, "COMMODITY_NOT_FOUND", "Commodity does not exist")
		}
		if _, err := repos.PathRepo().FindByID(ctx, req.PathID); err != nil {
			return referenceError(err, "PATH_NOT_FOUND", "Path does not exist")
		}
		if err := journey.AssignCargo(req.CommodityID, req.PathID); err != nil {
			return err
		}
		if err := repos.WalkInJourneyRepo().Save(ctx, journey); err != nil {
			return err
		}

		resp := ToWalkInJourneyResponse(journey)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelTruckJourney aborts an open declaration
func (s *JourneyService) CancelTruckJourney(ctx context.Context, journeyID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.TruckJourneyRepo().FindByIDForUpdate(ctx, journeyID)
		if err != nil {
			return err
		}
		if err := journey.Cancel(); err != nil {
			return err
		}
		return repos.TruckJourneyRepo().Save(ctx, journey)
	})
}

// CancelWalkInJourney aborts an open walk-in journey
func (s *JourneyService) CancelWalkInJourney(ctx context.Context, journeyID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.WalkInJourneyRepo().FindByIDForUpdate(ctx, journeyID)
		if err != nil {
			return err
		}
		if err := journey.Cancel(); err != nil {
			return err
		}
		return repos.WalkInJourneyRepo().Save(ctx, journey)
	})
}

// GetTruckJourney returns a declaration by ID
func (s *JourneyService) GetTruckJourney(ctx context.Context, journeyID uuid.UUID) (*JourneyResponse, error) {
	var result *JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.TruckJourneyRepo().FindByID(ctx, journeyID)
		if err != nil {
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

// GetTruckJourneyByNumber returns a declaration by its number
func (s *JourneyService) GetTruckJourneyByNumber(ctx context.Context, declarationNumber string) (*JourneyResponse, error) {
	var result *JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journey, err := repos.TruckJourneyRepo().FindByDeclarationNumber(ctx, declarationNumber)
		if err != nil {
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

// ListTruckJourneys lists declarations in a given lifecycle state
func (s *JourneyService) ListTruckJourneys(ctx context.Context, status checkpoint.JourneyStatus, filter shared.Filter) ([]JourneyResponse, error) {
	var result []JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journeys, err := repos.TruckJourneyRepo().FindByStatus(ctx, status, filter)
		if err != nil {
			return err
		}
		result = make([]JourneyResponse, 0, len(journeys))
		for i := range journeys {
			result = append(result, ToTruckJourneyResponse(&journeys[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListWalkInJourneys lists walk-in journeys in a given lifecycle state
func (s *JourneyService) ListWalkInJourneys(ctx context.Context, status checkpoint.JourneyStatus, filter shared.Filter) ([]JourneyResponse, error) {
	var result []JourneyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		journeys, err := repos.WalkInJourneyRepo().FindByStatus(ctx, status, filter)
		if err != nil {
			return err
		}
		result = make([]JourneyResponse, 0, len(journeys))
		for i := range journeys {
			result = append(result, ToWalkInJourneyResponse(&journeys[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *JourneyService) verifyReferences(ctx context.Context, repos TransactionalRepositories, exporterID, commodityID, pathID uuid.UUID) error {
	if _, err := repos.ExporterRepo().FindByID(ctx, exporterID); err != nil {
		return referenceError(err, "EXPORTER_NOT_FOUND", "Exporter does not exist")
	}
	if _, err := repos.CommodityRepo().FindByID(ctx, commodityID); err != nil {
		return referenceError(err, "COMMODITY_NOT_FOUND", "Commodity does not exist")
	}
	if _, err := repos.PathRepo().FindByID(ctx, pathID); err != nil {
		return referenceError(err, "PATH_NOT_FOUND", "Path does not exist")
	}
	return nil
}

func referenceError(err error, code, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(code, message)
	}
	return err
}
