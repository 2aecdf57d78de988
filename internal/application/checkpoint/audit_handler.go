package checkpoint

import (
	"context"

	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckpointAuditHandler writes an audit log line for every journey and
// settlement event. Revenue disputes are resolved from this trail, so the
// handler records the identifiers a field office would quote: declaration
// numbers, stations and amounts, never internal row versions.
type CheckpointAuditHandler struct {
	logger *zap.Logger
}

// NewCheckpointAuditHandler creates a new audit handler
func NewCheckpointAuditHandler(logger *zap.Logger) *CheckpointAuditHandler {
	return &CheckpointAuditHandler{
		logger: logger.Named("audit"),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CheckpointAuditHandler) EventTypes() []string {
	return []string{
		checkpoint.EventTypeJourneyOpened,
		checkpoint.EventTypeJourneyCompleted,
		checkpoint.EventTypeCheckinSettled,
	}
}

// Handle writes one audit entry per event
func (h *CheckpointAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *checkpoint.JourneyOpenedEvent:
		h.logger.Info("journey opened",
			zap.String("journey_id", e.JourneyID.String()),
			zap.String("declaration_number", e.DeclarationNumber),
			zap.String("truck_id", e.TruckID.String()),
		)
	case *checkpoint.WalkInJourneyOpenedEvent:
		h.logger.Info("walk-in journey opened",
			zap.String("journey_id", e.JourneyID.String()),
			zap.String("number", e.Number),
			zap.String("exporter_id", e.ExporterID.String()),
		)
	case *checkpoint.JourneyCompletedEvent:
		h.logger.Info("journey completed",
			zap.String("journey_id", e.JourneyID.String()),
			zap.String("kind", string(e.Kind)),
		)
	case *checkpoint.CheckinSettledEvent:
		h.logger.Info("checkin settled",
			zap.String("checkin_id", e.CheckinID.String()),
			zap.String("station_id", e.StationID.String()),
			zap.String("status", string(e.Status)),
			zap.String("owed", e.Owed.String()),
		)
	default:
		h.logger.Debug("unrecognized audit event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
	}
	return nil
}

// Ensure CheckpointAuditHandler implements EventHandler
var _ shared.EventHandler = (*CheckpointAuditHandler)(nil)
