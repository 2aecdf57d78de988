package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
)

// TruckService handles truck registry operations
type TruckService struct {
	truckRepo registry.TruckRepository
}

// NewTruckService creates a new TruckService
func NewTruckService(truckRepo registry.TruckRepository) *TruckService {
	return &TruckService{truckRepo: truckRepo}
}

// Register registers a new truck
func (s *TruckService) Register(ctx context.Context, req CreateTruckRequest) (*TruckResponse, error) {
	exists, err := s.truckRepo.ExistsByPlateNumber(ctx, req.PlateNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A truck with this plate number already exists")
	}

	truck, err := registry.NewTruck(req.PlateNumber, req.ChassisNumber)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		truck.SetCreatedBy(*req.CreatedBy)
	}
	truck.EngineNumber = req.EngineNumber

	if req.Brand != "" || req.YearOfManufacture != 0 || req.LoadingCapacityKg != 0 {
		if err := truck.SetSpecs(req.Brand, req.Model, req.CountryOfOrigin, req.Color, req.YearOfManufacture, req.LoadingCapacityKg); err != nil {
			return nil, err
		}
	}
	if req.OwnerName != "" {
		if err := truck.SetOwner(req.OwnerName, req.OwnerPhone); err != nil {
			return nil, err
		}
	}

	if err := s.truckRepo.Save(ctx, truck); err != nil {
		return nil, err
	}

	resp := ToTruckResponse(truck)
	return &resp, nil
}

// Update updates a truck's specs and owner details
func (s *TruckService) Update(ctx context.Context, id uuid.UUID, req UpdateTruckRequest) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := truck.SetSpecs(req.Brand, req.Model, req.CountryOfOrigin, req.Color, req.YearOfManufacture, req.LoadingCapacityKg); err != nil {
		return nil, err
	}
	if req.OwnerName != "" {
		if err := truck.SetOwner(req.OwnerName, req.OwnerPhone); err != nil {
			return nil, err
		}
	}

	if err := s.truckRepo.Save(ctx, truck); err != nil {
		return nil, err
	}

	resp := ToTruckResponse(truck)
	return &resp, nil
}

// ChangePlate reassigns a truck's plate number
func (s *TruckService) ChangePlate(ctx context.Context, id uuid.UUID, plateNumber string) (*TruckResponse, error) {
	existing, err := s.truckRepo.FindByPlateNumber(ctx, plateNumber)
	if err == nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A truck with this plate number already exists")
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	truck, err := s.truckRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := truck.ChangePlate(plateNumber); err != nil {
		return nil, err
	}
	if err := s.truckRepo.Save(ctx, truck); err != nil {
		return nil, err
	}

	resp := ToTruckResponse(truck)
	return &resp, nil
}

// Get returns a truck by ID
func (s *TruckService) Get(ctx context.Context, id uuid.UUID) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// GetByPlate returns a truck by plate number
func (s *TruckService) GetByPlate(ctx context.Context, plateNumber string) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByPlateNumber(ctx, plateNumber)
	if err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// List lists trucks matching the filter
func (s *TruckService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TruckResponse], error) {
	trucks, err := s.truckRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.truckRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TruckResponse, 0, len(trucks))
	for i := range trucks {
		items = append(items, ToTruckResponse(&trucks[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Deactivate takes a truck out of service
func (s *TruckService) Deactivate(ctx context.Context, id uuid.UUID) error {
	truck, err := s.truckRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := truck.Deactivate(); err != nil {
		return err
	}
	return s.truckRepo.Save(ctx, truck)
}

// Activate returns a truck to service
func (s *TruckService) Activate(ctx context.Context, id uuid.UUID) error {
	truck, err := s.truckRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := truck.Activate(); err != nil {
		return err
	}
	return s.truckRepo.Save(ctx, truck)
}
