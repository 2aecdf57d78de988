package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
)

func TestTruckServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a truck with specs and owner", func(t *testing.T) {
		repo := new(MockTruckRepository)
		svc := NewTruckService(repo)

		repo.On("ExistsByPlateNumber", ctx, "AA-12345").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*registry.Truck")).Return(nil)

		resp, err := svc.Register(ctx, CreateTruckRequest{
			PlateNumber:       "AA-12345",
			ChassisNumber:     "CHS-0001",
			Brand:             "Sino",
			Model:             "Howo",
			YearOfManufacture: 2019,
			LoadingCapacityKg: 30000,
			OwnerName:         "Tigist Alemu",
			OwnerPhone:        "+251911000000",
		})
		require.NoError(t, err)
		assert.Equal(t, "AA-12345", resp.PlateNumber)
		assert.Equal(t, "Sino", resp.Brand)
		assert.Equal(t, registry.TruckStatusActive, resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate plate", func(t *testing.T) {
		repo := new(MockTruckRepository)
		svc := NewTruckService(repo)

		repo.On("ExistsByPlateNumber", ctx, "AA-12345").Return(true, nil)

		_, err := svc.Register(ctx, CreateTruckRequest{
			PlateNumber:   "AA-12345",
			ChassisNumber: "CHS-0002",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects an implausible year", func(t *testing.T) {
		repo := new(MockTruckRepository)
		svc := NewTruckService(repo)

		repo.On("ExistsByPlateNumber", ctx, "AA-12345").Return(false, nil)

		_, err := svc.Register(ctx, CreateTruckRequest{
			PlateNumber:       "AA-12345",
			ChassisNumber:     "CHS-0001",
			Brand:             "Sino",
			YearOfManufacture: 1700,
		})
		assert.Error(t, err)
	})
}

func TestTruckServiceChangePlate(t *testing.T) {
	ctx := context.Background()

	truck, err := registry.NewTruck("AA-12345", "CHS-0001")
	require.NoError(t, err)

	t.Run("reassigns the plate", func(t *testing.T) {
		repo := new(MockTruckRepository)
		svc := NewTruckService(repo)

		repo.On("FindByPlateNumber", ctx, "AA-67890").Return(nil, shared.ErrNotFound)
		repo.On("FindByID", ctx, truck.ID).Return(truck, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*registry.Truck")).Return(nil)

		resp, err := svc.ChangePlate(ctx, truck.ID, "AA-67890")
		require.NoError(t, err)
		assert.Equal(t, "AA-67890", resp.PlateNumber)
	})

	t.Run("rejects a plate another truck holds", func(t *testing.T) {
		repo := new(MockTruckRepository)
		svc := NewTruckService(repo)

		other, err := registry.NewTruck("BB-11111", "CHS-0009")
		require.NoError(t, err)
		repo.On("FindByPlateNumber", ctx, "BB-11111").Return(other, nil)

		_, err = svc.ChangePlate(ctx, truck.ID, "BB-11111")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestTruckServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	truck, err := registry.NewTruck("AA-12345", "CHS-0001")
	require.NoError(t, err)

	repo := new(MockTruckRepository)
	svc := NewTruckService(repo)
	repo.On("FindByID", ctx, truck.ID).Return(truck, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*registry.Truck")).Return(nil)

	require.NoError(t, svc.Deactivate(ctx, truck.ID))
	assert.Equal(t, registry.TruckStatusInactive, truck.Status)

	// deactivating twice is a domain error
	assert.Error(t, svc.Deactivate(ctx, truck.ID))

	require.NoError(t, svc.Activate(ctx, truck.ID))
	assert.Equal(t, registry.TruckStatusActive, truck.Status)
}
