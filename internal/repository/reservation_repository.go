package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/flight-reservation/internal/model"
)

// DepartureRange restricts list queries to departures in [From, To).
// A zero bound is open.
type DepartureRange struct {
	From time.Time
	To   time.Time
}

func (d DepartureRange) cond(column string) (string, []any) {
	var where []string
	var args []any
	if !d.From.IsZero() {
		where = append(where, column+" >= ?")
		args = append(args, d.From)
	}
	if !d.To.IsZero() {
		where = append(where, column+" < ?")
		args = append(args, d.To)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(where, " AND "), args
}

const reservationCols = `cno, flight_number, departure_date_time, seat_class, payment, reserve_date_time`

const reservationKeyCond = `cno = ? AND flight_number = ? AND departure_date_time = ? AND seat_class = ?`

// ReservationRepo provides access to the reservations table.  A
// reservation is keyed by customer plus seat key, so a customer holds at
// most one reservation per flight and class.  Rows are inserted and
// deleted, never updated.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func scanReservation(sc interface{ Scan(...any) error }) (model.Reservation, error) {
	var r model.Reservation
	err := sc.Scan(&r.CustomerID, &r.FlightNumber, &r.DepartureAt, &r.SeatClass, &r.Payment, &r.ReservedAt)
	return r, err
}

// Get returns the reservation of cno for key, or ErrReservationNotFound.
func (r *ReservationRepo) Get(ctx context.Context, cno string, key model.SeatKey) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE `+reservationKeyCond,
		cno, key.FlightNumber, key.DepartureAt, key.SeatClass)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Exists reports whether cno already holds a reservation for key.
func (r *ReservationRepo) Exists(ctx context.Context, cno string, key model.SeatKey) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE `+reservationKeyCond,
		cno, key.FlightNumber, key.DepartureAt, key.SeatClass).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts res within the scope of an existing transaction.  A
// primary-key collision is reported as ErrDuplicateReservation.  The
// caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		res.CustomerID, res.FlightNumber, res.DepartureAt, res.SeatClass, res.Payment, res.ReservedAt)
	if isDuplicateKey(err) {
		return ErrDuplicateReservation
	}
	return err
}

// DeleteTx removes the reservation of cno for key.  It returns
// ErrReservationNotFound when no row was deleted, which also covers a
// concurrent cancellation that got there first.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, cno string, key model.SeatKey) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE `+reservationKeyCond,
		cno, key.FlightNumber, key.DepartureAt, key.SeatClass)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListByCustomer returns the reservations of cno ordered by departure,
// earliest first.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, cno string, within DepartureRange) ([]model.Reservation, error) {
	cond, args := within.cond("departure_date_time")
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE cno = ?`+cond+
			` ORDER BY departure_date_time ASC, flight_number ASC, seat_class ASC`,
		append([]any{cno}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
