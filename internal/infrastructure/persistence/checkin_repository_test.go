package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJourneyColumn(t *testing.T) {
	assert.Equal(t, "truck_journey_id", journeyColumn(checkpoint.JourneyKindTruck))
	assert.Equal(t, "walk_in_journey_id", journeyColumn(checkpoint.JourneyKindWalkIn))
}

func TestGormCheckinRepository_FindByJourney(t *testing.T) {
	t.Run("queries by truck journey column", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCheckinRepository(db)

		journeyID := uuid.New()
		checkinID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "station_id", "truck_journey_id", "status"}).
			AddRow(checkinID, uuid.New(), journeyID, "paid")

		mock.ExpectQuery(`SELECT \* FROM "checkins" WHERE truck_journey_id = \$1 ORDER BY checkin_time ASC, created_at ASC`).
			WithArgs(journeyID).
			WillReturnRows(rows)

		checkins, err := repo.FindByJourney(context.Background(), journeyID, checkpoint.JourneyKindTruck)

		assert.NoError(t, err)
		require.Len(t, checkins, 1)
		assert.Equal(t, checkinID, checkins[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("queries by walk-in journey column", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCheckinRepository(db)

		journeyID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "checkins" WHERE walk_in_journey_id = \$1 ORDER BY checkin_time ASC, created_at ASC`).
			WithArgs(journeyID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		checkins, err := repo.FindByJourney(context.Background(), journeyID, checkpoint.JourneyKindWalkIn)

		assert.NoError(t, err)
		assert.Empty(t, checkins)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCheckinRepository_FindUnsettledByStation(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCheckinRepository(db)

	stationID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "station_id", "status"}).
		AddRow(uuid.New(), stationID, "unpaid")

	mock.ExpectQuery(`SELECT \* FROM "checkins" WHERE station_id = \$1 AND status = \$2 ORDER BY checkin_time ASC`).
		WithArgs(stationID, "unpaid").
		WillReturnRows(rows)

	checkins, err := repo.FindUnsettledByStation(context.Background(), stationID, shared.Filter{})

	assert.NoError(t, err)
	require.Len(t, checkins, 1)
	assert.Equal(t, checkpoint.CheckinStatusUnpaid, checkins[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
