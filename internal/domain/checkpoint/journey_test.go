package checkpoint

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTruckJourney(t *testing.T) {
	t.Run("opens pending with a declaration number", func(t *testing.T) {
		journey, err := NewTruckJourney(uuid.New())

		require.NoError(t, err)
		assert.Equal(t, JourneyStatusPending, journey.Status)
		assert.NotEmpty(t, journey.DeclarationNumber)
		assert.True(t, journey.IsOpen())
		assert.Equal(t, JourneyKindTruck, journey.Kind())
		assert.Len(t, journey.GetDomainEvents(), 1)
	})

	t.Run("fails without a truck", func(t *testing.T) {
		journey, err := NewTruckJourney(uuid.Nil)

		assert.Error(t, err)
		assert.Nil(t, journey)
	})

	t.Run("declaration numbers are unique", func(t *testing.T) {
		a, err := NewTruckJourney(uuid.New())
		require.NoError(t, err)
		b, err := NewTruckJourney(uuid.New())
		require.NoError(t, err)

		assert.NotEqual(t, a.DeclarationNumber, b.DeclarationNumber)
	})
}

func TestTruckJourneyAssignDetails(t *testing.T) {
	journey, err := NewTruckJourney(uuid.New())
	require.NoError(t, err)
	pathID := uuid.New()

	t.Run("binds path and cargo", func(t *testing.T) {
		require.NoError(t, journey.AssignDetails(uuid.New(), uuid.New(), uuid.New(), pathID))

		bound, ok := journey.BoundPathID()
		require.True(t, ok)
		assert.Equal(t, pathID, bound)
	})

	t.Run("rebinding the same path is a no-op, a different path is rejected", func(t *testing.T) {
		require.NoError(t, journey.AssignDetails(uuid.Nil, uuid.New(), uuid.New(), pathID))
		assert.Error(t, journey.AssignDetails(uuid.Nil, uuid.New(), uuid.New(), uuid.New()))
	})

	t.Run("rejects incomplete details", func(t *testing.T) {
		other, err := NewTruckJourney(uuid.New())
		require.NoError(t, err)
		assert.Error(t, other.AssignDetails(uuid.Nil, uuid.Nil, uuid.New(), uuid.New()))
	})
}

func TestTruckJourneyLifecycle(t *testing.T) {
	journey, err := NewTruckJourney(uuid.New())
	require.NoError(t, err)

	journey.MarkOnGoing()
	assert.Equal(t, JourneyStatusOnGoing, journey.Status)

	// MarkOnGoing is idempotent
	journey.MarkOnGoing()
	assert.Equal(t, JourneyStatusOnGoing, journey.Status)

	require.NoError(t, journey.Complete())
	assert.Equal(t, JourneyStatusCompleted, journey.Status)
	assert.True(t, journey.IsClosed())

	assert.Error(t, journey.Complete())
	assert.Error(t, journey.Cancel())
}

func TestTruckJourneySubstituteTruck(t *testing.T) {
	originalTruck := uuid.New()
	journey, err := NewTruckJourney(originalTruck)
	require.NoError(t, err)
	journey.MarkOnGoing()

	t.Run("rewrites the truck reference", func(t *testing.T) {
		replacement := uuid.New()
		require.NoError(t, journey.SubstituteTruck(replacement))
		assert.Equal(t, replacement, journey.TruckID)
	})

	t.Run("rejects the same truck", func(t *testing.T) {
		assert.Error(t, journey.SubstituteTruck(journey.TruckID))
	})

	t.Run("rejects substitution on a closed journey", func(t *testing.T) {
		require.NoError(t, journey.Complete())
		assert.Error(t, journey.SubstituteTruck(uuid.New()))
	})
}

func TestWalkInJourneyLifecycle(t *testing.T) {
	exporterID := uuid.New()
	journey, err := NewWalkInJourney(exporterID)
	require.NoError(t, err)

	assert.Equal(t, JourneyStatusPending, journey.Status)
	assert.Equal(t, JourneyKindWalkIn, journey.Kind())
	assert.Equal(t, exporterID, journey.MovingEntityID())

	require.NoError(t, journey.AssignCargo(uuid.New(), uuid.New()))
	journey.MarkOnGoing()
	require.NoError(t, journey.Cancel())
	assert.Equal(t, JourneyStatusCancelled, journey.Status)

	assert.Error(t, journey.AssignCargo(uuid.New(), uuid.New()))
}

func TestNewTruckChange(t *testing.T) {
	operator := uuid.New()

	t.Run("creates audit record", func(t *testing.T) {
		latest := uuid.New()
		change, err := NewTruckChange(uuid.New(), uuid.New(), uuid.New(), uuid.New(), &latest, "breakdown", operator)

		require.NoError(t, err)
		require.NotNil(t, change.CreatedBy)
		assert.Equal(t, operator, *change.CreatedBy)
	})

	t.Run("rejects identical trucks", func(t *testing.T) {
		truckID := uuid.New()
		change, err := NewTruckChange(uuid.New(), truckID, truckID, uuid.New(), nil, "", operator)

		assert.Error(t, err)
		assert.Nil(t, change)
	})
}
