package tariff

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// TaxRepository defines the interface for tax rate persistence
type TaxRepository interface {
	// FindByID finds a tax by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tax, error)

	// FindApplicable finds the tax rate for the (station, taxpayer type, commodity)
	// triple. Returns shared.ErrNotFound when no rate is configured; callers must
	// treat that as a blocking condition, never as a zero rate.
	FindApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*Tax, error)

	// FindByStation finds all rates configured for a station
	FindByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]Tax, error)

	// FindAll finds all taxes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tax, error)

	// Save creates or updates a tax
	Save(ctx context.Context, tax *Tax) error

	// Delete deletes a tax
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts taxes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TaxPayerTypeRepository defines the interface for taxpayer type persistence
type TaxPayerTypeRepository interface {
	// FindByID finds a taxpayer type by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TaxPayerType, error)

	// FindByName finds a taxpayer type by name
	FindByName(ctx context.Context, name string) (*TaxPayerType, error)

	// FindAll finds all taxpayer types matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TaxPayerType, error)

	// Save creates or updates a taxpayer type
	Save(ctx context.Context, t *TaxPayerType) error

	// Delete deletes a taxpayer type
	Delete(ctx context.Context, id uuid.UUID) error
}
