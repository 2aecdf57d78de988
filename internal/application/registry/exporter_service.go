package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// ExporterService handles exporter registry operations. Walk-in
// journeys key on the exporter's public unique ID, so registration must
// precede the first weighbridge visit.
type ExporterService struct {
	exporterRepo registry.ExporterRepository
	taxTypeRepo  tariff.TaxPayerTypeRepository
}

// NewExporterService creates a new ExporterService
func NewExporterService(exporterRepo registry.ExporterRepository, taxTypeRepo tariff.TaxPayerTypeRepository) *ExporterService {
	return &ExporterService{exporterRepo: exporterRepo, taxTypeRepo: taxTypeRepo}
}

// Register registers a new exporter and mints its public unique ID
func (s *ExporterService) Register(ctx context.Context, req CreateExporterRequest) (*ExporterResponse, error) {
	if req.TIN != "" {
		if _, err := s.exporterRepo.FindByTIN(ctx, req.TIN); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An exporter with this TIN already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	exporter, err := registry.NewExporter(req.FirstName, req.LastName, registry.Gender(req.Gender))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		exporter.SetCreatedBy(*req.CreatedBy)
	}
	exporter.MiddleName = req.MiddleName
	if req.TIN != "" {
		if err := exporter.SetTIN(req.TIN); err != nil {
			return nil, err
		}
	}
	if req.PhoneNumber != "" || req.Woreda != "" || req.Kebele != "" {
		if err := exporter.SetContact(req.PhoneNumber, req.Woreda, req.Kebele); err != nil {
			return nil, err
		}
	}
	if req.TaxPayerTypeID != nil {
		if _, err := s.taxTypeRepo.FindByID(ctx, *req.TaxPayerTypeID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_TAXPAYER_TYPE", "Taxpayer type not found")
			}
			return nil, err
		}
		exporter.Classify(*req.TaxPayerTypeID)
	}

	if err := s.exporterRepo.Save(ctx, exporter); err != nil {
		return nil, err
	}

	resp := ToExporterResponse(exporter)
	return &resp, nil
}

// Classify assigns the exporter's taxpayer type for tariff lookup
func (s *ExporterService) Classify(ctx context.Context, id, taxPayerTypeID uuid.UUID) (*ExporterResponse, error) {
	if _, err := s.taxTypeRepo.FindByID(ctx, taxPayerTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TAXPAYER_TYPE", "Taxpayer type not found")
		}
		return nil, err
	}

	exporter, err := s.exporterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	exporter.Classify(taxPayerTypeID)
	if err := s.exporterRepo.Save(ctx, exporter); err != nil {
		return nil, err
	}

	resp := ToExporterResponse(exporter)
	return &resp, nil
}

// Get returns an exporter by ID
func (s *ExporterService) Get(ctx context.Context, id uuid.UUID) (*ExporterResponse, error) {
	exporter, err := s.exporterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToExporterResponse(exporter)
	return &resp, nil
}

// GetByUniqueID returns an exporter by its public identifier
func (s *ExporterService) GetByUniqueID(ctx context.Context, uniqueID string) (*ExporterResponse, error) {
	exporter, err := s.exporterRepo.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	resp := ToExporterResponse(exporter)
	return &resp, nil
}

// List lists exporters matching the filter
func (s *ExporterService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ExporterResponse], error) {
	exporters, err := s.exporterRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.exporterRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ExporterResponse, 0, len(exporters))
	for i := range exporters {
		items = append(items, ToExporterResponse(&exporters[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
