package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
)

// DriverService handles driver registry operations
type DriverService struct {
	driverRepo registry.DriverRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(driverRepo registry.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Register registers a new driver
func (s *DriverService) Register(ctx context.Context, req CreateDriverRequest) (*DriverResponse, error) {
	exists, err := s.driverRepo.ExistsByLicenseNumber(ctx, req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A driver with this license number already exists")
	}

	driver, err := registry.NewDriver(req.FirstName, req.LastName, req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		driver.SetCreatedBy(*req.CreatedBy)
	}
	if req.PhoneNumber != "" || req.Email != "" {
		if err := driver.SetContact(req.PhoneNumber, req.Email); err != nil {
			return nil, err
		}
	}
	driver.SetResidence(req.Woreda, req.Kebele)

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	resp := ToDriverResponse(driver)
	return &resp, nil
}

// Get returns a driver by ID
func (s *DriverService) Get(ctx context.Context, id uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDriverResponse(driver)
	return &resp, nil
}

// List lists drivers matching the filter
func (s *DriverService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[DriverResponse], error) {
	drivers, err := s.driverRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.driverRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DriverResponse, 0, len(drivers))
	for i := range drivers {
		items = append(items, ToDriverResponse(&drivers[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a driver from the registry
func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.driverRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.driverRepo.Delete(ctx, id)
}
