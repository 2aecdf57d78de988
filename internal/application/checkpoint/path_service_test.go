package checkpoint

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orc/backend/internal/domain/shared"
)

func TestCreateStation(t *testing.T) {
	e := newEnv(t)
	svc := NewPathService(e.f.scope)
	ctx := context.Background()

	station, err := svc.CreateStation(ctx, CreateStationRequest{
		Name:          "Hawassa Gate",
		MachineNumber: "HW-SCALE-01",
		Woreda:        "Hawassa Zuria",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hawassa Gate", station.Name)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.CreateStation(ctx, CreateStationRequest{
			Name:          "Hawassa Gate",
			MachineNumber: "HW-SCALE-02",
		})
		assert.Error(t, err)
	})

	t.Run("duplicate machine number", func(t *testing.T) {
		_, err := svc.CreateStation(ctx, CreateStationRequest{
			Name:          "Hawassa North",
			MachineNumber: "HW-SCALE-01",
		})
		assert.Error(t, err)
	})
}

func TestCreatePath(t *testing.T) {
	e := newEnv(t)
	svc := NewPathService(e.f.scope)
	ctx := context.Background()

	t.Run("orders stations as given", func(t *testing.T) {
		path, err := svc.CreatePath(ctx, CreatePathRequest{
			Name:       "Reverse Corridor",
			StationIDs: []uuid.UUID{e.stations[2].ID, e.stations[0].ID},
		})
		require.NoError(t, err)
		require.Len(t, path.Stations, 2)
		assert.Equal(t, e.stations[2].ID, path.Stations[0].StationID)
		assert.Equal(t, int64(1), path.Stations[0].Order)
		assert.Equal(t, int64(2), path.Stations[1].Order)
	})

	t.Run("rejects a sequence another path already carries", func(t *testing.T) {
		_, err := svc.CreatePath(ctx, CreatePathRequest{
			Name:       "Southern Corridor Copy",
			StationIDs: []uuid.UUID{e.stations[0].ID, e.stations[1].ID, e.stations[2].ID},
		})
		assert.ErrorIs(t, err, shared.ErrDuplicateSequence)
	})

	t.Run("a prefix of an existing sequence is a different path", func(t *testing.T) {
		_, err := svc.CreatePath(ctx, CreatePathRequest{
			Name:       "Short Corridor",
			StationIDs: []uuid.UUID{e.stations[0].ID, e.stations[1].ID},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown station", func(t *testing.T) {
		_, err := svc.CreatePath(ctx, CreatePathRequest{
			Name:       "Ghost Corridor",
			StationIDs: []uuid.UUID{uuid.New()},
		})
		assert.Error(t, err)
	})
}

func TestPathMutation(t *testing.T) {
	e := newEnv(t)
	svc := NewPathService(e.f.scope)
	ctx := context.Background()

	t.Run("append keeps appending after a removal", func(t *testing.T) {
		path, err := svc.RemoveStation(ctx, e.path.ID, e.stations[1].ID)
		require.NoError(t, err)
		require.Len(t, path.Stations, 2)
		// the gap left by the removal stays
		assert.Equal(t, int64(1), path.Stations[0].Order)
		assert.Equal(t, int64(3), path.Stations[1].Order)

		extra, err := svc.CreateStation(ctx, CreateStationRequest{Name: "Bypass", MachineNumber: "BP-SCALE-01"})
		require.NoError(t, err)
		path, err = svc.AppendStation(ctx, e.path.ID, extra.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), path.Stations[2].Order)
	})

	t.Run("reorder renumbers from one", func(t *testing.T) {
		current, err := svc.GetPath(ctx, e.path.ID)
		require.NoError(t, err)
		reversed := make([]uuid.UUID, 0, len(current.Stations))
		for i := len(current.Stations) - 1; i >= 0; i-- {
			reversed = append(reversed, current.Stations[i].StationID)
		}

		path, err := svc.ReorderStations(ctx, e.path.ID, reversed)
		require.NoError(t, err)
		for i, ps := range path.Stations {
			assert.Equal(t, int64(i+1), ps.Order)
			assert.Equal(t, reversed[i], ps.StationID)
		}
	})

	t.Run("reorder must cover every station", func(t *testing.T) {
		_, err := svc.ReorderStations(ctx, e.path.ID, []uuid.UUID{e.stations[0].ID})
		assert.Error(t, err)
	})
}

func TestPathImmutableWhileJourneysOpen(t *testing.T) {
	e := newEnv(t)
	svc := NewPathService(e.f.scope)
	ctx := context.Background()

	e.f.paths.openJourneys = map[uuid.UUID]bool{e.path.ID: true}

	_, err := svc.RemoveStation(ctx, e.path.ID, e.stations[1].ID)
	assert.True(t, errors.Is(err, shared.ErrPathInUse))

	_, err = svc.ReorderStations(ctx, e.path.ID, []uuid.UUID{
		e.stations[2].ID, e.stations[1].ID, e.stations[0].ID,
	})
	assert.True(t, errors.Is(err, shared.ErrPathInUse))

	assert.ErrorIs(t, svc.DeletePath(ctx, e.path.ID), shared.ErrPathInUse)
}
