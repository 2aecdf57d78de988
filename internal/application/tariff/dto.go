package tariff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orc/backend/internal/domain/tariff"
)

// CreateTaxPayerTypeRequest creates a taxpayer classification
type CreateTaxPayerTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// TaxPayerTypeResponse is the API representation of a taxpayer type
type TaxPayerTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToTaxPayerTypeResponse maps a taxpayer type to its API representation
func ToTaxPayerTypeResponse(t *tariff.TaxPayerType) TaxPayerTypeResponse {
	return TaxPayerTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// CreateTaxRequest configures a rate for one (station, taxpayer type,
// commodity) triple
type CreateTaxRequest struct {
	Name           string          `json:"name"`
	StationID      uuid.UUID       `json:"station_id" binding:"required"`
	TaxPayerTypeID uuid.UUID       `json:"tax_payer_type_id" binding:"required"`
	CommodityID    uuid.UUID       `json:"commodity_id" binding:"required"`
	Percentage     decimal.Decimal `json:"percentage" binding:"required"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// TaxResponse is the API representation of a configured rate
type TaxResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name,omitempty"`
	StationID      uuid.UUID       `json:"station_id"`
	TaxPayerTypeID uuid.UUID       `json:"tax_payer_type_id"`
	CommodityID    uuid.UUID       `json:"commodity_id"`
	Percentage     decimal.Decimal `json:"percentage"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToTaxResponse maps a tax to its API representation
func ToTaxResponse(t *tariff.Tax) TaxResponse {
	return TaxResponse{
		ID:             t.ID,
		Name:           t.Name,
		StationID:      t.StationID,
		TaxPayerTypeID: t.TaxPayerTypeID,
		CommodityID:    t.CommodityID,
		Percentage:     t.Percentage,
		CreatedAt:      t.CreatedAt,
	}
}
