package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-reservation/internal/model"
)

var testKey = model.SeatKey{
	FlightNumber: "KE081",
	DepartureAt:  time.Date(2026, 11, 20, 10, 30, 0, 0, time.UTC),
	SeatClass:    "Economy",
}

func newMock(t *testing.T) (*SeatRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSeatRepo(db), mock
}

func TestAdjustClampsInStorageAndReportsFoundRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE seats SET number_of_seats = GREATEST`).
		WithArgs(-5, testKey.FlightNumber, testKey.DepartureAt, testKey.SeatClass).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Adjust(context.Background(), testKey, -5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE seats`).
		WithArgs(1, testKey.FlightNumber, testKey.DepartureAt, testKey.SeatClass).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Adjust(context.Background(), testKey, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetAvailableMissingRowIsZero(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT number_of_seats FROM seats`).
		WithArgs(testKey.FlightNumber, testKey.DepartureAt, testKey.SeatClass).
		WillReturnRows(sqlmock.NewRows([]string{"number_of_seats"}))

	n, err := repo.GetAvailable(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGetAvailable(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT number_of_seats FROM seats`).
		WillReturnRows(sqlmock.NewRows([]string{"number_of_seats"}).AddRow(7))

	n, err := repo.GetAvailable(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestGetMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT flight_number, departure_date_time, seat_class, number_of_seats, price`).
		WillReturnRows(sqlmock.NewRows([]string{"flight_number", "departure_date_time", "seat_class", "number_of_seats", "price"}))

	_, err := repo.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveSeatTx(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		exists   bool
		want     error
	}{
		{name: "decremented", affected: 1},
		{name: "exhausted", affected: 0, exists: true, want: ErrSeatsExhausted},
		{name: "missing row", affected: 0, exists: false, want: ErrSeatNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectBegin()
			mock.ExpectExec(`number_of_seats = number_of_seats - 1 WHERE .* AND number_of_seats > 0`).
				WithArgs(testKey.FlightNumber, testKey.DepartureAt, testKey.SeatClass).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			if tc.affected == 0 {
				rows := sqlmock.NewRows([]string{"1"})
				if tc.exists {
					rows.AddRow(1)
				}
				mock.ExpectQuery(`SELECT 1 FROM seats`).WillReturnRows(rows)
			}
			mock.ExpectRollback()

			tx, err := repo.DB().Begin()
			require.NoError(t, err)
			err = repo.ReserveSeatTx(context.Background(), tx, testKey)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
			require.NoError(t, tx.Rollback())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
