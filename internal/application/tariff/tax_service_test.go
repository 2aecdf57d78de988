package tariff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// MockTaxRepository is a mock implementation of TaxRepository
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Tax, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tariff.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*tariff.Tax, error) {
	args := m.Called(ctx, stationID, taxPayerTypeID, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tariff.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]tariff.Tax, error) {
	args := m.Called(ctx, stationID, filter)
	return args.Get(0).([]tariff.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.Tax, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tariff.Tax), args.Error(1)
}

func (m *MockTaxRepository) Save(ctx context.Context, tax *tariff.Tax) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

func (m *MockTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
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

func TestCreateTaxPayerType(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a type", func(t *testing.T) {
		taxRepo := new(MockTaxRepository)
		typeRepo := new(MockTaxPayerTypeRepository)
		svc := NewTaxService(taxRepo, typeRepo)

		typeRepo.On("FindByName", ctx, "Level A").Return(nil, shared.ErrNotFound)
		typeRepo.On("Save", ctx, mock.AnythingOfType("*tariff.TaxPayerType")).Return(nil)

		resp, err := svc.CreateTaxPayerType(ctx, CreateTaxPayerTypeRequest{Name: "Level A"})
		require.NoError(t, err)
		assert.Equal(t, "Level A", resp.Name)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		taxRepo := new(MockTaxRepository)
		typeRepo := new(MockTaxPayerTypeRepository)
		svc := NewTaxService(taxRepo, typeRepo)

		existing, err := tariff.NewTaxPayerType("Level A", "")
		require.NoError(t, err)
		typeRepo.On("FindByName", ctx, "Level A").Return(existing, nil)

		_, err = svc.CreateTaxPayerType(ctx, CreateTaxPayerTypeRequest{Name: "Level A"})
		assert.Error(t, err)
	})
}

func TestCreateTax(t *testing.T) {
	ctx := context.Background()
	stationID, typeID, commodityID := uuid.New(), uuid.New(), uuid.New()

	t.Run("configures a rate for a free triple", func(t *testing.T) {
		taxRepo := new(MockTaxRepository)
		typeRepo := new(MockTaxPayerTypeRepository)
		svc := NewTaxService(taxRepo, typeRepo)

		taxRepo.On("FindApplicable", ctx, stationID, typeID, commodityID).Return(nil, shared.ErrNotFound)
		taxRepo.On("Save", ctx, mock.AnythingOfType("*tariff.Tax")).Return(nil)

		resp, err := svc.CreateTax(ctx, CreateTaxRequest{
			StationID:      stationID,
			TaxPayerTypeID: typeID,
			CommodityID:    commodityID,
			Percentage:     decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5).Equal(resp.Percentage))
	})

	t.Run("one rate per triple", func(t *testing.T) {
		taxRepo := new(MockTaxRepository)
		typeRepo := new(MockTaxPayerTypeRepository)
		svc := NewTaxService(taxRepo, typeRepo)

		existing, err := tariff.NewTax("Standard", stationID, typeID, commodityID, decimal.NewFromInt(5))
		require.NoError(t, err)
		taxRepo.On("FindApplicable", ctx, stationID, typeID, commodityID).Return(existing, nil)

		_, err = svc.CreateTax(ctx, CreateTaxRequest{
			StationID:      stationID,
			TaxPayerTypeID: typeID,
			CommodityID:    commodityID,
			Percentage:     decimal.NewFromInt(7),
		})
		assert.Error(t, err)
		taxRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a rate above one hundred percent", func(t *testing.T) {
		taxRepo := new(MockTaxRepository)
		typeRepo := new(MockTaxPayerTypeRepository)
		svc := NewTaxService(taxRepo, typeRepo)

		taxRepo.On("FindApplicable", ctx, stationID, typeID, commodityID).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateTax(ctx, CreateTaxRequest{
			StationID:      stationID,
			TaxPayerTypeID: typeID,
			CommodityID:    commodityID,
			Percentage:     decimal.NewFromInt(101),
		})
		assert.Error(t, err)
	})
}

func TestUpdateRate(t *testing.T) {
	ctx := context.Background()

	tax, err := tariff.NewTax("Standard", uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(5))
	require.NoError(t, err)

	taxRepo := new(MockTaxRepository)
	typeRepo := new(MockTaxPayerTypeRepository)
	svc := NewTaxService(taxRepo, typeRepo)

	taxRepo.On("FindByID", ctx, tax.ID).Return(tax, nil)
	taxRepo.On("Save", ctx, mock.AnythingOfType("*tariff.Tax")).Return(nil)

	resp, err := svc.UpdateRate(ctx, tax.ID, decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.5").Equal(resp.Percentage))

	_, err = svc.UpdateRate(ctx, tax.ID, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
