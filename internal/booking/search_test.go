package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResolvesAliasesAndDay(t *testing.T) {
	st, mock := newStores(t)
	seoul := time.FixedZone("KST", 9*60*60)
	s := NewFlightSearch(st, seoul)

	day := time.Date(2026, 11, 20, 0, 0, 0, 0, seoul)
	mock.ExpectQuery(`FROM airplanes a`).
		WithArgs(day, day.AddDate(0, 0, 1), "ICN", "JFK", "Business").
		WillReturnRows(sqlmock.NewRows([]string{"flight_number", "departure_date_time", "airline", "departure_airport",
			"arrival_date_time", "arrival_airport", "seat_class", "number_of_seats", "price"}).
			AddRow("OZ222", day.Add(9*time.Hour), "Asiana", "ICN", day.Add(23*time.Hour), "JFK", "Business", 2, int64(1800000)).
			AddRow("KE081", day.Add(10*time.Hour), "Korean Air", "ICN", day.Add(24*time.Hour), "JFK", "Business", 5, int64(2100000)))

	rows, err := s.Search(context.Background(), SearchRequest{
		Date: "2026-11-20", Departure: "인천공항", Arrival: "뉴욕", SeatClass: "비즈니스",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.LessOrEqual(t, rows[0].Price, rows[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchUnknownAirportPassesThrough(t *testing.T) {
	st, mock := newStores(t)
	s := NewFlightSearch(st, time.UTC)

	mock.ExpectQuery(`FROM airplanes a`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "LAX", "ICN", "Economy").
		WillReturnRows(sqlmock.NewRows([]string{"flight_number"}))

	rows, err := s.Search(context.Background(), SearchRequest{
		Date: "2026-11-20", Departure: "LAX", Arrival: "ICN", SeatClass: "Economy",
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchRejectsMalformedDate(t *testing.T) {
	st, mock := newStores(t)
	s := NewFlightSearch(st, time.UTC)

	_, err := s.Search(context.Background(), SearchRequest{Date: "20-11-2026", Departure: "ICN", Arrival: "JFK", SeatClass: "Economy"})
	assert.True(t, IsInvalidInput(err))
	_, err = s.Search(context.Background(), SearchRequest{Date: "2026-11-20", Departure: "", Arrival: "JFK", SeatClass: "Economy"})
	assert.True(t, IsInvalidInput(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
