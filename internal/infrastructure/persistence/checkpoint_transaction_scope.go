package persistence

import (
	"context"

	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/tariff"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every sequencing validation, checkin write and journey state change runs
// through here so reads and writes commit or roll back as a unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcheckpoint.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// TruckJourneyRepo returns the declaration repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TruckJourneyRepo() checkpoint.TruckJourneyRepository {
	return NewGormTruckJourneyRepository(r.tx)
}

// WalkInJourneyRepo returns the walk-in journey repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WalkInJourneyRepo() checkpoint.WalkInJourneyRepository {
	return NewGormWalkInJourneyRepository(r.tx)
}

// CheckinRepo returns the checkin repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CheckinRepo() checkpoint.CheckinRepository {
	return NewGormCheckinRepository(r.tx)
}

// PathRepo returns the path repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PathRepo() checkpoint.PathRepository {
	return NewGormPathRepository(r.tx)
}

// StationRepo returns the station repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StationRepo() checkpoint.StationRepository {
	return NewGormStationRepository(r.tx)
}

// TruckChangeRepo returns the truck change repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TruckChangeRepo() checkpoint.TruckChangeRepository {
	return NewGormTruckChangeRepository(r.tx)
}

// ManualPaymentRepo returns the manual payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ManualPaymentRepo() checkpoint.ManualPaymentRepository {
	return NewGormManualPaymentRepository(r.tx)
}

// TruckRepo returns the truck repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TruckRepo() registry.TruckRepository {
	return NewGormTruckRepository(r.tx)
}

// ExporterRepo returns the exporter repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ExporterRepo() registry.ExporterRepository {
	return NewGormExporterRepository(r.tx)
}

// CommodityRepo returns the commodity repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CommodityRepo() registry.CommodityRepository {
	return NewGormCommodityRepository(r.tx)
}

// TaxRepo returns the tax repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TaxRepo() tariff.TaxRepository {
	return NewGormTaxRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appcheckpoint.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appcheckpoint.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
