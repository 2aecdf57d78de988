// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CheckpointMetrics provides business metrics for the checkpoint system.
// It tracks checkin throughput, assessed tax, payment activity, and
// journey lifecycle health.
type CheckpointMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	checkinRecordedTotal  *Counter
	taxAssessedTotal      *Counter
	paymentTotal          *Counter
	journeyCompletedTotal *Counter

	// Gauge metrics (point-in-time values)
	journeysOpen   *Gauge
	checkinsUnpaid *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	stateProvider CheckpointStateProvider
}

// CheckpointStateProvider provides aggregated checkpoint data for periodic
// metrics collection. This interface allows the telemetry layer to query
// journey and checkin state without depending on the checkpoint domain
// directly.
type CheckpointStateProvider interface {
	// GetOpenJourneyCounts returns the number of journeys that have not yet
	// completed or been cancelled, keyed by journey kind.
	GetOpenJourneyCounts(ctx context.Context) (map[string]int64, error)

	// GetUnpaidCheckinCountByStation returns the number of unpaid checkins
	// blocking progression, per station.
	GetUnpaidCheckinCountByStation(ctx context.Context) (map[uuid.UUID]int64, error)
}

// CheckpointMetricsConfig holds configuration for checkpoint metrics.
type CheckpointMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StateProvider   CheckpointStateProvider
}

// NewCheckpointMetrics creates a new CheckpointMetrics instance.
func NewCheckpointMetrics(cfg CheckpointMetricsConfig) (*CheckpointMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CheckpointMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stateProvider: cfg.StateProvider,
	}

	// Initialize counter metrics
	var err error

	// Checkin metrics
	cm.checkinRecordedTotal, err = NewCounter(
		cfg.Meter,
		"orc_checkin_recorded_total",
		"Total number of checkpoint visits recorded",
		"{checkins}",
	)
	if err != nil {
		return nil, err
	}

	cm.taxAssessedTotal, err = NewCounter(
		cfg.Meter,
		"orc_tax_assessed_total",
		"Total assessed tax amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Payment metrics
	cm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"orc_payment_total",
		"Total number of payment transactions",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	// Journey metrics
	cm.journeyCompletedTotal, err = NewCounter(
		cfg.Meter,
		"orc_journey_completed_total",
		"Total number of journeys that reached their final station fully settled",
		"{journeys}",
	)
	if err != nil {
		return nil, err
	}

	// Gauge metrics
	cm.journeysOpen, err = NewGauge(
		cfg.Meter,
		"orc_journeys_open",
		"Current number of journeys still progressing through their path",
		"{journeys}",
	)
	if err != nil {
		return nil, err
	}

	cm.checkinsUnpaid, err = NewGauge(
		cfg.Meter,
		"orc_checkins_unpaid",
		"Number of checkins with outstanding tax blocking progression",
		"{checkins}",
	)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

// =============================================================================
// Checkin Metrics
// =============================================================================

// RecordCheckin records a weighbridge or roadside checkin attempt.
// This should be called from the application layer for every reading,
// accepted or declined, with the resulting verdict as label.
func (cm *CheckpointMetrics) RecordCheckin(ctx context.Context, stationID uuid.UUID, journeyKind, verdict string) {
	cm.checkinRecordedTotal.Inc(ctx,
		AttrStationID.String(stationID.String()),
		AttrJourneyKind.String(journeyKind),
		AttrVerdict.String(verdict),
	)
}

// RecordTaxAssessed records the tax assessed at a station.
// Amount is converted to the smallest currency unit (cents).
func (cm *CheckpointMetrics) RecordTaxAssessed(ctx context.Context, stationID uuid.UUID, amount decimal.Decimal) {
	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	cm.taxAssessedTotal.Add(ctx, amountCents,
		AttrStationID.String(stationID.String()),
	)
}

// =============================================================================
// Payment Metrics
// =============================================================================

// PaymentStatus represents the outcome of a payment for metrics labeling.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// RecordPayment records a payment transaction.
// This should be called when a manual payment is recorded or a gateway
// callback is processed.
func (cm *CheckpointMetrics) RecordPayment(ctx context.Context, paymentMethod string, status PaymentStatus) {
	cm.paymentTotal.Inc(ctx,
		AttrPaymentMethod.String(paymentMethod),
		AttrPaymentStatus.String(string(status)),
	)
}

// =============================================================================
// Journey Metrics
// =============================================================================

// RecordJourneyCompleted records a journey reaching its final station with
// all checkins settled.
func (cm *CheckpointMetrics) RecordJourneyCompleted(ctx context.Context, journeyKind string) {
	cm.journeyCompletedTotal.Inc(ctx,
		AttrJourneyKind.String(journeyKind),
	)
}

// RecordOpenJourneys records the current number of open journeys for a kind.
// This is a gauge metric that should be updated periodically.
func (cm *CheckpointMetrics) RecordOpenJourneys(ctx context.Context, journeyKind string, count int64) {
	cm.journeysOpen.Record(ctx, count,
		AttrJourneyKind.String(journeyKind),
	)
}

// RecordUnpaidCheckins records the number of unpaid checkins at a station.
// This is a gauge metric that should be updated periodically.
func (cm *CheckpointMetrics) RecordUnpaidCheckins(ctx context.Context, stationID uuid.UUID, count int64) {
	cm.checkinsUnpaid.Record(ctx, count,
		AttrStationID.String(stationID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects journey and checkin state every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (cm *CheckpointMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	cm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go cm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (cm *CheckpointMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	cm.collectStateMetrics(ctx)

	for {
		select {
		case <-cm.stopChan:
			cm.logger.Info("Stopping periodic checkpoint metrics collection")
			return
		case <-ctx.Done():
			cm.logger.Info("Context cancelled, stopping periodic checkpoint metrics collection")
			return
		case <-ticker.C:
			cm.collectStateMetrics(ctx)
		}
	}
}

// collectStateMetrics collects journey and checkin gauge metrics.
func (cm *CheckpointMetrics) collectStateMetrics(ctx context.Context) {
	if cm.stateProvider == nil {
		cm.logger.Debug("No state provider configured, skipping checkpoint metrics collection")
		return
	}

	openByKind, err := cm.stateProvider.GetOpenJourneyCounts(ctx)
	if err != nil {
		cm.logger.Warn("Failed to get open journey counts", zap.Error(err))
	} else {
		for kind, count := range openByKind {
			cm.RecordOpenJourneys(ctx, kind, count)
		}
	}

	unpaidByStation, err := cm.stateProvider.GetUnpaidCheckinCountByStation(ctx)
	if err != nil {
		cm.logger.Warn("Failed to get unpaid checkin counts", zap.Error(err))
	} else {
		for stationID, count := range unpaidByStation {
			cm.RecordUnpaidCheckins(ctx, stationID, count)
		}
	}
}

// Stop stops the periodic collection.
func (cm *CheckpointMetrics) Stop() {
	cm.stopOnce.Do(func() {
		close(cm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewCheckpointMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
