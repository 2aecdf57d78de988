package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
)

// CommodityService handles commodity registry operations. A price
// change only affects checkins stamped after it; stamped assessments
// keep the price they were issued under.
type CommodityService struct {
	commodityRepo registry.CommodityRepository
}

// NewCommodityService creates a new CommodityService
func NewCommodityService(commodityRepo registry.CommodityRepository) *CommodityService {
	return &CommodityService{commodityRepo: commodityRepo}
}

// Create registers a new commodity
func (s *CommodityService) Create(ctx context.Context, req CreateCommodityRequest) (*CommodityResponse, error) {
	exists, err := s.commodityRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A commodity with this name already exists")
	}

	commodity, err := registry.NewCommodity(req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		commodity.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.commodityRepo.Save(ctx, commodity); err != nil {
		return nil, err
	}

	resp := ToCommodityResponse(commodity)
	return &resp, nil
}

// UpdatePrice sets a new unit price
func (s *CommodityService) UpdatePrice(ctx context.Context, id uuid.UUID, unitPrice int64) (*CommodityResponse, error) {
	commodity, err := s.commodityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := commodity.UpdatePrice(unitPrice); err != nil {
		return nil, err
	}
	if err := s.commodityRepo.Save(ctx, commodity); err != nil {
		return nil, err
	}

	resp := ToCommodityResponse(commodity)
	return &resp, nil
}

// Get returns a commodity by ID
func (s *CommodityService) Get(ctx context.Context, id uuid.UUID) (*CommodityResponse, error) {
	commodity, err := s.commodityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCommodityResponse(commodity)
	return &resp, nil
}

// List lists commodities matching the filter
func (s *CommodityService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CommodityResponse], error) {
	commodities, err := s.commodityRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.commodityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CommodityResponse, 0, len(commodities))
	for i := range commodities {
		items = append(items, ToCommodityResponse(&commodities[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a commodity
func (s *CommodityService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.commodityRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.commodityRepo.Delete(ctx, id)
}
