package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flight-reservation/internal/model"
)

const cancellationCols = `cno, flight_number, departure_date_time, seat_class, refund, cancel_date_time`

// CancellationRepo provides access to the append-only cancellations table.
type CancellationRepo struct {
	db *sql.DB
}

// NewCancellationRepo returns a CancellationRepo bound to db.
func NewCancellationRepo(db *sql.DB) *CancellationRepo { return &CancellationRepo{db: db} }

// CreateTx appends c inside tx.  A key collision (the same reservation
// cancelled twice at the same instant) is reported as ErrConflict.
func (r *CancellationRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.Cancellation) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO cancellations (`+cancellationCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.FlightNumber, c.DepartureAt, c.SeatClass, c.Refund, c.CancelledAt)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// ListByCustomer returns the cancellations of cno, most recent first.
func (r *CancellationRepo) ListByCustomer(ctx context.Context, cno string, within DepartureRange) ([]model.Cancellation, error) {
	cond, args := within.cond("departure_date_time")
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cancellationCols+` FROM cancellations WHERE cno = ?`+cond+
			` ORDER BY cancel_date_time DESC`,
		append([]any{cno}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Cancellation{}
	for rows.Next() {
		var c model.Cancellation
		if err := rows.Scan(&c.CustomerID, &c.FlightNumber, &c.DepartureAt, &c.SeatClass, &c.Refund, &c.CancelledAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats returns the number of cancellations and the sum of all refunds.
func (r *CancellationRepo) Stats(ctx context.Context) (model.CancellationStats, error) {
	var s model.CancellationStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(refund), 0) FROM cancellations`).
		Scan(&s.TotalCancellations, &s.TotalRefund)
	return s, err
}

// RefundsByCustomer ranks customers by the total refund they received.
// Customers whose refunds sum to zero are left out.
func (r *CancellationRepo) RefundsByCustomer(ctx context.Context, limit int) ([]model.CustomerRefundSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.cno, cu.name, COUNT(*), SUM(c.refund), MAX(c.refund)
		   FROM cancellations c
		   JOIN customers cu ON cu.cno = c.cno
		  GROUP BY c.cno, cu.name
		 HAVING SUM(c.refund) > 0
		  ORDER BY SUM(c.refund) DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CustomerRefundSummary{}
	for rows.Next() {
		var s model.CustomerRefundSummary
		if err := rows.Scan(&s.CNO, &s.Name, &s.CancelCount, &s.TotalRefund, &s.MaxRefund); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
