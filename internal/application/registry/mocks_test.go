package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// MockTruckRepository is a mock implementation of TruckRepository
type MockTruckRepository struct {
	mock.Mock
}

func (m *MockTruckRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindByPlateNumber(ctx context.Context, plateNumber string) (*registry.Truck, error) {
	args := m.Called(ctx, plateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Truck, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]registry.Truck), args.Error(1)
}

func (m *MockTruckRepository) Save(ctx context.Context, truck *registry.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTruckRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTruckRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	args := m.Called(ctx, plateNumber)
	return args.Bool(0), args.Error(1)
}

// MockDriverRepository is a mock implementation of DriverRepository
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByLicenseNumber(ctx context.Context, licenseNumber string) (*registry.Driver, error) {
	args := m.Called(ctx, licenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Driver, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]registry.Driver), args.Error(1)
}

func (m *MockDriverRepository) Save(ctx context.Context, driver *registry.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriverRepository) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	args := m.Called(ctx, licenseNumber)
	return args.Bool(0), args.Error(1)
}

// MockExporterRepository is a mock implementation of ExporterRepository
type MockExporterRepository struct {
	mock.Mock
}

func (m *MockExporterRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Exporter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Exporter), args.Error(1)
}

func (m *MockExporterRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*registry.Exporter, error) {
	args := m.Called(ctx, uniqueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Exporter), args.Error(1)
}

func (m *MockExporterRepository) FindByTIN(ctx context.Context, tin string) (*registry.Exporter, error) {
	args := m.Called(ctx, tin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Exporter), args.Error(1)
}

func (m *MockExporterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Exporter, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]registry.Exporter), args.Error(1)
}

func (m *MockExporterRepository) Save(ctx context.Context, exporter *registry.Exporter) error {
	args := m.Called(ctx, exporter)
	return args.Error(0)
}

func (m *MockExporterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExporterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommodityRepository is a mock implementation of CommodityRepository
type MockCommodityRepository struct {
	mock.Mock
}

func (m *MockCommodityRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Commodity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindByName(ctx context.Context, name string) (*registry.Commodity, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]registry.Commodity, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]registry.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) Save(ctx context.Context, commodity *registry.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

func (m *MockCommodityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommodityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommodityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockTaxPayerTypeRepository is a mock implementation of TaxPayerTypeRepository
type MockTaxPayerTypeRepository struct {
	mock.Mock
}

func (m *MockTaxPayerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.TaxPayerType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tariff.TaxPayerType), args.Error(1)
}

func (m *MockTaxPayerTypeRepository) FindByName(ctx context.Context, name string) (*tariff.TaxPayerType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tariff.TaxPayerType), args.Error(1)
}

func (m *MockTaxPayerTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.TaxPayerType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tariff.TaxPayerType), args.Error(1)
}

func (m *MockTaxPayerTypeRepository) Save(ctx context.Context, t *tariff.TaxPayerType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaxPayerTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
