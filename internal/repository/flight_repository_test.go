package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightSearchBindsResolvedCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := testKey.DepartureAt.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 1)
	cols := []string{"flight_number", "departure_date_time", "airline", "departure_airport",
		"arrival_date_time", "arrival_airport", "seat_class", "number_of_seats", "price"}
	mock.ExpectQuery(`departure_airport IN \(\?,\?\).*arrival_airport IN \(\?\).*ORDER BY s.price ASC`).
		WithArgs(from, to, "ICN", "GMP", "JFK", "Economy").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("KE081", testKey.DepartureAt, "Korean Air", "ICN", testKey.DepartureAt.Add(14*time.Hour), "JFK", "Economy", 12, int64(450000)))

	got, err := NewFlightRepo(db).Search(context.Background(), FlightSearchQuery{
		From: from, To: to,
		DepartureCodes: []string{"ICN", "GMP"},
		ArrivalCodes:   []string{"JFK"},
		SeatClass:      "Economy",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Korean Air", got[0].Airline)
	assert.Equal(t, 12, got[0].Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightSearchWithoutCodesSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := NewFlightRepo(db).Search(context.Background(), FlightSearchQuery{SeatClass: "Economy"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightGetByKeyMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM airplanes WHERE flight_number`).
		WillReturnRows(sqlmock.NewRows([]string{"flight_number"}))

	_, err = NewFlightRepo(db).GetByKey(context.Background(), "KE081", testKey.DepartureAt)
	assert.ErrorIs(t, err, ErrFlightNotFound)
}
