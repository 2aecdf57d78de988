package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// idempotencyTTL bounds how long a device retry is absorbed
const idempotencyTTL = 24 * time.Hour

// WeighbridgeService handles net-weight pushes from checkpoint devices.
// It orchestrates the sequencing validator and the journey/checkin state
// machine inside one transaction per push.
type WeighbridgeService struct {
	txScope        TransactionScope
	idempotency    shared.IdempotencyStore
	eventPublisher shared.EventPublisher
}

// NewWeighbridgeService creates a new WeighbridgeService
func NewWeighbridgeService(txScope TransactionScope, idempotency shared.IdempotencyStore) *WeighbridgeService {
	return &WeighbridgeService{
		txScope:     txScope,
		idempotency: idempotency,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *WeighbridgeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// IngestTruckReading records a weighbridge reading for a truck. The
// decision and the writes are one atomic unit: the validator re-runs
// inside the transaction holding the journey row lock, and the unique
// (journey, station) constraint backs it as a final guard.
func (s *WeighbridgeService) IngestTruckReading(ctx context.Context, req WeighbridgeTruckRequest) (*WeighbridgeResult, error) {
	if req.NetWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Net weight cannot be negative")
	}

	if dup, err := s.replayed(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if dup {
		return &WeighbridgeResult{Duplicate: true, Message: "Reading already processed"}, nil
	}

	var result *WeighbridgeResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		station, err := repos.StationRepo().FindByMachineNumber(ctx, req.MachineNumber)
		if err != nil {
			return fmt.Errorf("resolving station for machine %s: %w", req.MachineNumber, err)
		}

		truck, err := repos.TruckRepo().FindByPlateNumber(ctx, req.PlateNumber)
		if err != nil {
			return fmt.Errorf("resolving truck %s: %w", req.PlateNumber, err)
		}

		journey, err := s.openTruckJourney(ctx, repos, truck.ID)
		if err != nil {
			return err
		}

		if journey == nil {
			// no open journey: the weighbridge is the restart point
			journey, err = checkpoint.NewTruckJourney(truck.ID)
			if err != nil {
				return err
			}
			result, err = s.recordCheckin(ctx, repos, journey, nil, station.ID, req.NetWeight, req.PlateImageKey)
			return err
		}

		// lock the journey row for the read-validate-write sequence
		journey, err = repos.TruckJourneyRepo().FindByIDForUpdate(ctx, journey.ID)
		if err != nil {
			return err
		}

		path, err := s.boundPath(ctx, repos, journey)
		if err != nil {
			return err
		}
		checkins, err := repos.CheckinRepo().FindByJourney(ctx, journey.ID, checkpoint.JourneyKindTruck)
		if err != nil {
			return err
		}

		decision := checkpoint.ValidateSequence(journey, path, checkins, checkpoint.Candidate{
			StationID: station.ID,
			NetWeight: req.NetWeight,
		})
		if !decision.Verdict.Allowed() {
			result = declineResult(decision, journey)
			return nil
		}

		result, err = s.applyDecision(ctx, repos, journey, decision, station.ID, req.NetWeight, req.PlateImageKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.markProcessed(ctx, req.IdempotencyKey)
	return result, nil
}

// IngestWalkInReading records a reading for a walk-in taxpayer. The
// exporter must already be registered; the journey itself may stay
// PENDING until a controller completes the cargo details.
func (s *WeighbridgeService) IngestWalkInReading(ctx context.Context, req WeighbridgeWalkInRequest) (*WeighbridgeResult, error) {
	if req.NetWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Net weight cannot be negative")
	}

	if dup, err := s.replayed(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if dup {
		return &WeighbridgeResult{Duplicate: true, Message: "Reading already processed"}, nil
	}

	var result *WeighbridgeResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		station, err := repos.StationRepo().FindByMachineNumber(ctx, req.MachineNumber)
		if err != nil {
			return fmt.Errorf("resolving station for machine %s: %w", req.MachineNumber, err)
		}

		exporter, err := repos.ExporterRepo().FindByUniqueID(ctx, req.ExporterUniqueID)
		if err != nil {
			return fmt.Errorf("resolving exporter %s: %w", req.ExporterUniqueID, err)
		}

		journey, err := s.openWalkInJourney(ctx, repos, exporter.ID)
		if err != nil {
			return err
		}

		if journey == nil {
			journey, err = checkpoint.NewWalkInJourney(exporter.ID)
			if err != nil {
				return err
			}
			result, err = s.recordWalkInCheckin(ctx, repos, journey, nil, station.ID, req.NetWeight)
			return err
		}

		journey, err = repos.WalkInJourneyRepo().FindByIDForUpdate(ctx, journey.ID)
		if err != nil {
			return err
		}

		path, err := s.boundPath(ctx, repos, journey)
		if err != nil {
			return err
		}
		checkins, err := repos.CheckinRepo().FindByJourney(ctx, journey.ID, checkpoint.JourneyKindWalkIn)
		if err != nil {
			return err
		}

		decision := checkpoint.ValidateSequence(journey, path, checkins, checkpoint.Candidate{
			StationID: station.ID,
			NetWeight: req.NetWeight,
		})
		if !decision.Verdict.Allowed() {
			result = declineWalkInResult(decision, journey)
			return nil
		}

		result, err = s.applyWalkInDecision(ctx, repos, journey, decision, station.ID, req.NetWeight)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.markProcessed(ctx, req.IdempotencyKey)
	return result, nil
}

// openTruckJourney returns the truck's open journey, or nil when the
// truck has none and a new one must be started.
func (s *WeighbridgeService) openTruckJourney(ctx context.Context, repos TransactionalRepositories, truckID uuid.UUID) (*checkpoint.TruckJourney, error) {
	journey, err := repos.TruckJourneyRepo().FindOpenByTruck(ctx, truckID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return journey, nil
}

func (s *WeighbridgeService) openWalkInJourney(ctx context.Context, repos TransactionalRepositories, exporterID uuid.UUID) (*checkpoint.WalkInJourney, error) {
	journey, err := repos.WalkInJourneyRepo().FindOpenByExporter(ctx, exporterID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return journey, nil
}

// boundPath loads the journey's path with its stations, nil when no
// path has been assigned yet.
func (s *WeighbridgeService) boundPath(ctx context.Context, repos TransactionalRepositories, journey checkpoint.TrackedJourney) (*checkpoint.Path, error) {
	pathID, ok := journey.BoundPathID()
	if !ok {
		return nil, nil
	}
	return repos.PathRepo().FindByID(ctx, pathID)
}

func (s *WeighbridgeService) applyDecision(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.TruckJourney, decision checkpoint.Decision, stationID uuid.UUID, netWeight decimal.Decimal, plateImageKey string) (*WeighbridgeResult, error) {
	chk, err := checkpoint.NewTruckCheckin(journey.ID, stationID, netWeight)
	if err != nil {
		return nil, err
	}
	return s.persistCheckin(ctx, repos, journey, chk, decision.IncrementalWeight, decision.CompletesJourney, decision.Verdict, plateImageKey)
}

func (s *WeighbridgeService) recordCheckin(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.TruckJourney, _ *checkpoint.Path, stationID uuid.UUID, netWeight decimal.Decimal, plateImageKey string) (*WeighbridgeResult, error) {
	chk, err := checkpoint.NewTruckCheckin(journey.ID, stationID, netWeight)
	if err != nil {
		return nil, err
	}
	return s.persistCheckin(ctx, repos, journey, chk, netWeight, false, checkpoint.VerdictAllowNewDeclaration, plateImageKey)
}

func (s *WeighbridgeService) persistCheckin(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.TruckJourney, chk *checkpoint.Checkin, incremental decimal.Decimal, completes bool, verdict checkpoint.Verdict, plateImageKey string) (*WeighbridgeResult, error) {
	if err := chk.ResolveFromIncremental(incremental); err != nil {
		return nil, err
	}
	chk.AttachPlateImage(plateImageKey)

	journey.MarkOnGoing()
	if completes {
		if err := journey.Complete(); err != nil {
			return nil, err
		}
	}

	if err := repos.TruckJourneyRepo().Save(ctx, journey); err != nil {
		return nil, err
	}
	if err := repos.CheckinRepo().Save(ctx, chk); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// a concurrent push won the race; report it as already checked
			return &WeighbridgeResult{
				Verdict: checkpoint.VerdictRejectAlreadyCheckedHere,
				Message: VerdictMessage(checkpoint.VerdictRejectAlreadyCheckedHere),
			}, nil
		}
		return nil, err
	}

	s.publish(ctx, journey)

	jr := ToTruckJourneyResponse(journey)
	cr := ToCheckinResponse(chk)
	return &WeighbridgeResult{
		Verdict: verdict,
		Message: VerdictMessage(verdict),
		Journey: &jr,
		Checkin: &cr,
	}, nil
}

func (s *WeighbridgeService) applyWalkInDecision(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.WalkInJourney, decision checkpoint.Decision, stationID uuid.UUID, netWeight decimal.Decimal) (*WeighbridgeResult, error) {
	chk, err := checkpoint.NewWalkInCheckin(journey.ID, stationID, netWeight)
	if err != nil {
		return nil, err
	}
	return s.persistWalkInCheckin(ctx, repos, journey, chk, decision.IncrementalWeight, decision.CompletesJourney, decision.Verdict)
}

func (s *WeighbridgeService) recordWalkInCheckin(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.WalkInJourney, _ *checkpoint.Path, stationID uuid.UUID, netWeight decimal.Decimal) (*WeighbridgeResult, error) {
	chk, err := checkpoint.NewWalkInCheckin(journey.ID, stationID, netWeight)
	if err != nil {
		return nil, err
	}
	return s.persistWalkInCheckin(ctx, repos, journey, chk, netWeight, false, checkpoint.VerdictAllowNewDeclaration)
}

func (s *WeighbridgeService) persistWalkInCheckin(ctx context.Context, repos TransactionalRepositories, journey *checkpoint.WalkInJourney, chk *checkpoint.Checkin, incremental decimal.Decimal, completes bool, verdict checkpoint.Verdict) (*WeighbridgeResult, error) {
	if err := chk.ResolveFromIncremental(incremental); err != nil {
		return nil, err
	}

	journey.MarkOnGoing()
	if completes {
		if err := journey.Complete(); err != nil {
			return nil, err
		}
	}

	if err := repos.WalkInJourneyRepo().Save(ctx, journey); err != nil {
		return nil, err
	}
	if err := repos.CheckinRepo().Save(ctx, chk); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return &WeighbridgeResult{
				Verdict: checkpoint.VerdictRejectAlreadyCheckedHere,
				Message: VerdictMessage(checkpoint.VerdictRejectAlreadyCheckedHere),
			}, nil
		}
		return nil, err
	}

	s.publish(ctx, journey)

	jr := ToWalkInJourneyResponse(journey)
	cr := ToCheckinResponse(chk)
	return &WeighbridgeResult{
		Verdict: verdict,
		Message: VerdictMessage(verdict),
		Journey: &jr,
		Checkin: &cr,
	}, nil
}

func declineResult(decision checkpoint.Decision, journey *checkpoint.TruckJourney) *WeighbridgeResult {
	jr := ToTruckJourneyResponse(journey)
	result := &WeighbridgeResult{
		Verdict: decision.Verdict,
		Message: VerdictMessage(decision.Verdict),
		Journey: &jr,
	}
	if decision.SkippedStationID != uuid.Nil {
		skipped := decision.SkippedStationID
		result.SkippedStationID = &skipped
	}
	return result
}

func declineWalkInResult(decision checkpoint.Decision, journey *checkpoint.WalkInJourney) *WeighbridgeResult {
	jr := ToWalkInJourneyResponse(journey)
	result := &WeighbridgeResult{
		Verdict: decision.Verdict,
		Message: VerdictMessage(decision.Verdict),
		Journey: &jr,
	}
	if decision.SkippedStationID != uuid.Nil {
		skipped := decision.SkippedStationID
		result.SkippedStationID = &skipped
	}
	return result
}

// replayed reports whether this reading was already absorbed
func (s *WeighbridgeService) replayed(ctx context.Context, key string) (bool, error) {
	if key == "" || s.idempotency == nil {
		return false, nil
	}
	return s.idempotency.IsProcessed(ctx, key)
}

// markProcessed records the reading after a successful commit. A failure
// here only means a retry will be re-validated, which is safe: the
// sequencing check rejects the duplicate anyway.
func (s *WeighbridgeService) markProcessed(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	_, _ = s.idempotency.MarkProcessed(ctx, key, idempotencyTTL)
}

func (s *WeighbridgeService) publish(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
