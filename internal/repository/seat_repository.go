package repository // repository defines data access for seat inventory

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/flight-reservation/internal/model"
)

const seatKeyCond = "flight_number = ? AND departure_date_time = ? AND seat_class = ?"

// SeatRepo is the inventory ledger: it owns the remaining-seat counter of
// every (flight, departure, class) row in the seats table.  Rows are
// created outside this service; the ledger only moves their counters and
// never lets them drop below zero.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions that
// span several repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// Adjust adds delta to the counter of key and commits immediately.  The
// new value is clamped at zero.  It reports whether the row exists; a
// missing row is never created.
func (r *SeatRepo) Adjust(ctx context.Context, key model.SeatKey, delta int) (bool, error) {
	return adjustSeats(ctx, r.db, key, delta)
}

// AdjustTx is Adjust inside a caller-owned transaction.
func (r *SeatRepo) AdjustTx(ctx context.Context, tx *sql.Tx, key model.SeatKey, delta int) (bool, error) {
	return adjustSeats(ctx, tx, key, delta)
}

func adjustSeats(ctx context.Context, q querier, key model.SeatKey, delta int) (bool, error) {
	// clientFoundRows=true in the DSN: RowsAffected counts matched rows,
	// including ones already at zero that GREATEST leaves unchanged.
	res, err := q.ExecContext(ctx,
		`UPDATE seats SET number_of_seats = GREATEST(number_of_seats + ?, 0) WHERE `+seatKeyCond,
		delta, key.FlightNumber, key.DepartureAt, key.SeatClass)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetAvailable returns the remaining seats for key, or 0 when the row
// does not exist.
func (r *SeatRepo) GetAvailable(ctx context.Context, key model.SeatKey) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT number_of_seats FROM seats WHERE `+seatKeyCond,
		key.FlightNumber, key.DepartureAt, key.SeatClass).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// Get fetches the inventory row for key.
func (r *SeatRepo) Get(ctx context.Context, key model.SeatKey) (*model.SeatInventory, error) {
	var s model.SeatInventory
	err := r.db.QueryRowContext(ctx,
		`SELECT flight_number, departure_date_time, seat_class, number_of_seats, price
		   FROM seats WHERE `+seatKeyCond,
		key.FlightNumber, key.DepartureAt, key.SeatClass).
		Scan(&s.FlightNumber, &s.DepartureAt, &s.SeatClass, &s.NumberOfSeats, &s.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ReserveSeatTx takes one seat from key inside tx.  The decrement is a
// single conditional statement, so two transactions racing for the last
// seat cannot both succeed.  It returns ErrSeatNotFound when the row does
// not exist and ErrSeatsExhausted when it is already at zero.
func (r *SeatRepo) ReserveSeatTx(ctx context.Context, tx *sql.Tx, key model.SeatKey) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE seats SET number_of_seats = number_of_seats - 1 WHERE `+seatKeyCond+` AND number_of_seats > 0`,
		key.FlightNumber, key.DepartureAt, key.SeatClass)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE `+seatKeyCond,
		key.FlightNumber, key.DepartureAt, key.SeatClass).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSeatNotFound
	}
	if err != nil {
		return err
	}
	return ErrSeatsExhausted
}
