package checkpoint

import (
	"context"

	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/tariff"
)

// TransactionScope provides transactional access to the checkpoint
// repositories. Every read-validate-write sequence over a journey and
// its checkins runs inside one Execute call so the sequencing check,
// the uniqueness check and the writes commit or roll back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error the transaction is rolled back,
	// otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	TruckJourneyRepo() checkpoint.TruckJourneyRepository
	WalkInJourneyRepo() checkpoint.WalkInJourneyRepository
	CheckinRepo() checkpoint.CheckinRepository
	PathRepo() checkpoint.PathRepository
	StationRepo() checkpoint.StationRepository
	TruckChangeRepo() checkpoint.TruckChangeRepository
	ManualPaymentRepo() checkpoint.ManualPaymentRepository
	TruckRepo() registry.TruckRepository
	ExporterRepo() registry.ExporterRepository
	CommodityRepo() registry.CommodityRepository
	TaxRepo() tariff.TaxRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	TruckJourneys  checkpoint.TruckJourneyRepository
	WalkInJourneys checkpoint.WalkInJourneyRepository
	Checkins       checkpoint.CheckinRepository
	Paths          checkpoint.PathRepository
	Stations       checkpoint.StationRepository
	TruckChanges   checkpoint.TruckChangeRepository
	ManualPayments checkpoint.ManualPaymentRepository
	Trucks         registry.TruckRepository
	Exporters      registry.ExporterRepository
	Commodities    registry.CommodityRepository
	Taxes          tariff.TaxRepository
}

// Execute runs the function directly against the held repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) TruckJourneyRepo() checkpoint.TruckJourneyRepository {
	return s.TruckJourneys
}

func (s *NoOpTransactionScope) WalkInJourneyRepo() checkpoint.WalkInJourneyRepository {
	return s.WalkInJourneys
}

func (s *NoOpTransactionScope) CheckinRepo() checkpoint.CheckinRepository {
	return s.Checkins
}

func (s *NoOpTransactionScope) PathRepo() checkpoint.PathRepository {
	return s.Paths
}

func (s *NoOpTransactionScope) StationRepo() checkpoint.StationRepository {
	return s.Stations
}

func (s *NoOpTransactionScope) TruckChangeRepo() checkpoint.TruckChangeRepository {
	return s.TruckChanges
}

func (s *NoOpTransactionScope) ManualPaymentRepo() checkpoint.ManualPaymentRepository {
	return s.ManualPayments
}

func (s *NoOpTransactionScope) TruckRepo() registry.TruckRepository {
	return s.Trucks
}

func (s *NoOpTransactionScope) ExporterRepo() registry.ExporterRepository {
	return s.Exporters
}

func (s *NoOpTransactionScope) CommodityRepo() registry.CommodityRepository {
	return s.Commodities
}

func (s *NoOpTransactionScope) TaxRepo() tariff.TaxRepository {
	return s.Taxes
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
