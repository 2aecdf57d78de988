package tariff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// TaxService manages taxpayer types and the rate table. Exactly one
// rate may exist per (station, taxpayer type, commodity) triple; the
// checkpoint blocks assessment where no rate is configured rather than
// assuming zero.
type TaxService struct {
	taxRepo     tariff.TaxRepository
	taxTypeRepo tariff.TaxPayerTypeRepository
}

// NewTaxService creates a new TaxService
func NewTaxService(taxRepo tariff.TaxRepository, taxTypeRepo tariff.TaxPayerTypeRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo, taxTypeRepo: taxTypeRepo}
}

// CreateTaxPayerType creates a taxpayer classification
func (s *TaxService) CreateTaxPayerType(ctx context.Context, req CreateTaxPayerTypeRequest) (*TaxPayerTypeResponse, error) {
	if _, err := s.taxTypeRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A taxpayer type with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	taxType, err := tariff.NewTaxPayerType(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.taxTypeRepo.Save(ctx, taxType); err != nil {
		return nil, err
	}

	resp := ToTaxPayerTypeResponse(taxType)
	return &resp, nil
}

// ListTaxPayerTypes lists all taxpayer types
func (s *TaxService) ListTaxPayerTypes(ctx context.Context, filter shared.Filter) ([]TaxPayerTypeResponse, error) {
	types, err := s.taxTypeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TaxPayerTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, ToTaxPayerTypeResponse(&types[i]))
	}
	return out, nil
}

// CreateTax configures a rate for a (station, taxpayer type, commodity)
// triple that does not have one yet
func (s *TaxService) CreateTax(ctx context.Context, req CreateTaxRequest) (*TaxResponse, error) {
	if _, err := s.taxRepo.FindApplicable(ctx, req.StationID, req.TaxPayerTypeID, req.CommodityID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A rate is already configured for this station, taxpayer type and commodity")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tax, err := tariff.NewTax(req.Name, req.StationID, req.TaxPayerTypeID, req.CommodityID, req.Percentage)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		tax.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	resp := ToTaxResponse(tax)
	return &resp, nil
}

// UpdateRate changes the percentage of a configured rate. Checkins
// already stamped keep the rate they were assessed under.
func (s *TaxService) UpdateRate(ctx context.Context, id uuid.UUID, percentage decimal.Decimal) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tax.UpdateRate(percentage); err != nil {
		return nil, err
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	resp := ToTaxResponse(tax)
	return &resp, nil
}

// GetApplicable resolves the rate for a triple, ErrNotFound when none
// is configured
func (s *TaxService) GetApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindApplicable(ctx, stationID, taxPayerTypeID, commodityID)
	if err != nil {
		return nil, err
	}
	resp := ToTaxResponse(tax)
	return &resp, nil
}

// ListByStation lists the rates configured for a station
func (s *TaxService) ListByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]TaxResponse, error) {
	taxes, err := s.taxRepo.FindByStation(ctx, stationID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TaxResponse, 0, len(taxes))
	for i := range taxes {
		out = append(out, ToTaxResponse(&taxes[i]))
	}
	return out, nil
}

// DeleteTax removes a configured rate. Journeys still moving past the
// affected station will block at assessment until a new rate exists.
func (s *TaxService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taxRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.taxRepo.Delete(ctx, id)
}
