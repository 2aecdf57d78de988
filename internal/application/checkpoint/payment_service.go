package checkpoint

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
)

// PaymentService settles checkins and completes journeys at terminal
// stations. Settlement and completion are one atomic transaction; a
// failure anywhere rolls back the whole action.
type PaymentService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txScope TransactionScope) *PaymentService {
	return &PaymentService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PayManual settles a checkin with a cash or bank payment accepted by an
// operator. If the checkin sits at its path's terminal station, the
// journey completes in the same transaction.
func (s *PaymentService) PayManual(ctx context.Context, req ManualPaymentRequest, operatorID uuid.UUID) (*PaymentResult, error) {
	var result *PaymentResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		chk, err := repos.CheckinRepo().FindByID(ctx, req.CheckinID)
		if err != nil {
			return fmt.Errorf("resolving checkin: %w", err)
		}

		method := "cash"
		if req.IsBank {
			method = "bank"
		}
		if err := chk.MarkPaid(method, req.ReceiptNumber, operatorID); err != nil {
			return err
		}

		payment, err := checkpoint.NewManualPayment(chk.ID, req.IsBank, req.BankName, req.BankAccount, req.PayerName, operatorID)
		if err != nil {
			return err
		}
		if err := repos.ManualPaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.CheckinRepo().Save(ctx, chk); err != nil {
			return err
		}

		completed, err := s.completeIfTerminal(ctx, repos, chk)
		if err != nil {
			return err
		}

		s.publish(ctx, chk)
		result = &PaymentResult{Checkin: ToCheckinResponse(chk), JourneyCompleted: completed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmGateway settles a checkin from a payment-gateway confirmation
// callback, with the same terminal-station completion semantics.
func (s *PaymentService) ConfirmGateway(ctx context.Context, req GatewayCallbackRequest) (*PaymentResult, error) {
	var result *PaymentResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		chk, err := repos.CheckinRepo().FindByID(ctx, req.CheckinID)
		if err != nil {
			return fmt.Errorf("resolving checkin: %w", err)
		}

		if err := chk.MarkSuccess(req.TransactionKey, req.ConfirmationCode); err != nil {
			return err
		}
		if err := repos.CheckinRepo().Save(ctx, chk); err != nil {
			return err
		}

		completed, err := s.completeIfTerminal(ctx, repos, chk)
		if err != nil {
			return err
		}

		s.publish(ctx, chk)
		result = &PaymentResult{Checkin: ToCheckinResponse(chk), JourneyCompleted: completed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// completeIfTerminal completes the journey when the settled checkin sits
// at its path's maximum-order station.
func (s *PaymentService) completeIfTerminal(ctx context.Context, repos TransactionalRepositories, chk *checkpoint.Checkin) (bool, error) {
	switch {
	case chk.TruckJourneyID != nil:
		journey, err := repos.TruckJourneyRepo().FindByIDForUpdate(ctx, *chk.TruckJourneyID)
		if err != nil {
			return false, err
		}
		terminal, err := s.atTerminal(ctx, repos, journey, chk.StationID)
		if err != nil || !terminal || journey.IsClosed() {
			return false, err
		}
		if err := journey.Complete(); err != nil {
			return false, err
		}
		if err := repos.TruckJourneyRepo().Save(ctx, journey); err != nil {
			return false, err
		}
		s.publish(ctx, journey)
		return true, nil

	case chk.WalkInJourneyID != nil:
		journey, err := repos.WalkInJourneyRepo().FindByIDForUpdate(ctx, *chk.WalkInJourneyID)
		if err != nil {
			return false, err
		}
		terminal, err := s.atTerminal(ctx, repos, journey, chk.StationID)
		if err != nil || !terminal || journey.IsClosed() {
			return false, err
		}
		if err := journey.Complete(); err != nil {
			return false, err
		}
		if err := repos.WalkInJourneyRepo().Save(ctx, journey); err != nil {
			return false, err
		}
		s.publish(ctx, journey)
		return true, nil

	default:
		return false, shared.NewDomainError("INVALID_JOURNEY_REF", "Checkin references no journey")
	}
}

func (s *PaymentService) atTerminal(ctx context.Context, repos TransactionalRepositories, journey checkpoint.TrackedJourney, stationID uuid.UUID) (bool, error) {
	pathID, ok := journey.BoundPathID()
	if !ok {
		return false, nil
	}
	path, err := repos.PathRepo().FindByID(ctx, pathID)
	if err != nil {
		return false, err
	}
	return path.IsTerminal(stationID), nil
}

func (s *PaymentService) publish(ctx context.Context, aggregate shared.AggregateRoot) {
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
