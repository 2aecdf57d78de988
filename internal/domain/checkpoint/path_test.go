package checkpoint

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath(t *testing.T) {
	t.Run("creates empty path", func(t *testing.T) {
		path, err := NewPath("border-corridor")

		require.NoError(t, err)
		assert.Empty(t, path.Stations)
		assert.Equal(t, int64(0), path.TerminalOrder())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		path, err := NewPath("  ")

		assert.Error(t, err)
		assert.Nil(t, path)
	})
}

func TestPathAppendStation(t *testing.T) {
	path, err := NewPath("border-corridor")
	require.NoError(t, err)
	a, b := uuid.New(), uuid.New()

	t.Run("orders are assigned monotonically", func(t *testing.T) {
		require.NoError(t, path.AppendStation(a))
		require.NoError(t, path.AppendStation(b))

		orderA, ok := path.OrderOf(a)
		require.True(t, ok)
		orderB, ok := path.OrderOf(b)
		require.True(t, ok)
		assert.Equal(t, int64(1), orderA)
		assert.Equal(t, int64(2), orderB)
	})

	t.Run("rejects a duplicate station", func(t *testing.T) {
		err := path.AppendStation(a)
		assert.Error(t, err)
	})

	t.Run("removal leaves order gaps untouched", func(t *testing.T) {
		c := uuid.New()
		require.NoError(t, path.AppendStation(c))
		require.NoError(t, path.RemoveStation(b))

		orderC, ok := path.OrderOf(c)
		require.True(t, ok)
		assert.Equal(t, int64(3), orderC)
		assert.False(t, path.ContainsStation(b))

		// a new append continues past the gap
		d := uuid.New()
		require.NoError(t, path.AppendStation(d))
		orderD, _ := path.OrderOf(d)
		assert.Equal(t, int64(4), orderD)
	})
}

func TestPathReorder(t *testing.T) {
	path, err := NewPath("border-corridor")
	require.NoError(t, err)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, path.AppendStation(a))
	require.NoError(t, path.AppendStation(b))
	require.NoError(t, path.AppendStation(c))

	t.Run("renumbers from one", func(t *testing.T) {
		require.NoError(t, path.Reorder([]uuid.UUID{c, a, b}))

		ordered := path.OrderedStations()
		require.Len(t, ordered, 3)
		assert.Equal(t, c, ordered[0].StationID)
		assert.Equal(t, a, ordered[1].StationID)
		assert.Equal(t, b, ordered[2].StationID)
		assert.Equal(t, int64(1), ordered[0].Order)
		assert.Equal(t, int64(3), ordered[2].Order)
	})

	t.Run("rejects missing stations", func(t *testing.T) {
		assert.Error(t, path.Reorder([]uuid.UUID{a, b}))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		assert.Error(t, path.Reorder([]uuid.UUID{a, a, b}))
	})

	t.Run("rejects foreign stations", func(t *testing.T) {
		assert.Error(t, path.Reorder([]uuid.UUID{a, b, uuid.New()}))
	})
}

func TestPathTerminal(t *testing.T) {
	path, err := NewPath("border-corridor")
	require.NoError(t, err)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, path.AppendStation(a))
	require.NoError(t, path.AppendStation(b))

	assert.False(t, path.IsTerminal(a))
	assert.True(t, path.IsTerminal(b))
	assert.False(t, path.IsTerminal(uuid.New()))
}

func TestPathFirstSkippedBetween(t *testing.T) {
	path, err := NewPath("border-corridor")
	require.NoError(t, err)
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b, c, d} {
		require.NoError(t, path.AppendStation(id))
	}

	t.Run("reports the lowest-order skipped station", func(t *testing.T) {
		skipped, ok := path.FirstSkippedBetween(1, 4)
		require.True(t, ok)
		assert.Equal(t, b, skipped)
	})

	t.Run("adjacent orders have nothing between", func(t *testing.T) {
		_, ok := path.FirstSkippedBetween(2, 3)
		assert.False(t, ok)
	})
}

func TestPathSequenceKey(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	p1, err := NewPath("one")
	require.NoError(t, err)
	require.NoError(t, p1.AppendStation(a))
	require.NoError(t, p1.AppendStation(b))

	p2, err := NewPath("two")
	require.NoError(t, err)
	require.NoError(t, p2.AppendStation(a))
	require.NoError(t, p2.AppendStation(b))

	p3, err := NewPath("three")
	require.NoError(t, err)
	require.NoError(t, p3.AppendStation(a))

	// same sequence yields the same key; a prefix yields a different key
	assert.Equal(t, p1.SequenceKey, p2.SequenceKey)
	assert.NotEqual(t, p1.SequenceKey, p3.SequenceKey)

	t.Run("empty path carries no key", func(t *testing.T) {
		empty, err := NewPath("empty")
		require.NoError(t, err)
		assert.Empty(t, empty.SequenceKey)
	})

	t.Run("removal and reorder keep the key current", func(t *testing.T) {
		require.NoError(t, p1.RemoveStation(b))
		assert.Equal(t, p3.SequenceKey, p1.SequenceKey)

		require.NoError(t, p2.Reorder([]uuid.UUID{b, a}))
		assert.NotEqual(t, p1.SequenceKey, p2.SequenceKey)
		assert.NotEqual(t, p3.SequenceKey, p2.SequenceKey)
	})
}
