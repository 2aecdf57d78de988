package tariff

import (
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tax configures the rate charged at a station for a commodity brought
// in by a given class of taxpayer. The triple is unique: at most one
// rate applies to any (station, taxpayer type, commodity).
type Tax struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(100)"`
	StationID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tax_station_type_commodity,priority:1"`
	TaxPayerTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tax_station_type_commodity,priority:2"`
	CommodityID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tax_station_type_commodity,priority:3"`
	Percentage     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates a new tax rate configuration
func NewTax(name string, stationID, taxPayerTypeID, commodityID uuid.UUID, percentage decimal.Decimal) (*Tax, error) {
	if err := validatePercentage(percentage); err != nil {
		return nil, err
	}
	if stationID == uuid.Nil || taxPayerTypeID == uuid.Nil || commodityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TAX_SCOPE", "Station, taxpayer type and commodity are all required")
	}

	return &Tax{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		StationID:         stationID,
		TaxPayerTypeID:    taxPayerTypeID,
		CommodityID:       commodityID,
		Percentage:        percentage,
	}, nil
}

// UpdateRate updates the percentage. Checkins already stamped with the
// old rate keep it; only journeys opened after the change pick this up.
func (t *Tax) UpdateRate(percentage decimal.Decimal) error {
	if err := validatePercentage(percentage); err != nil {
		return err
	}

	t.Percentage = percentage
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

func validatePercentage(p decimal.Decimal) error {
	if p.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Tax percentage cannot be negative")
	}
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_RATE", "Tax percentage cannot exceed 100")
	}
	return nil
}
