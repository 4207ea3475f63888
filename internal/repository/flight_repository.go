package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/flight-reservation/internal/model"
)

// FlightSearchQuery holds the already-resolved filters of a flight search.
// Departures are matched in [From, To).
type FlightSearchQuery struct {
	From           time.Time
	To             time.Time
	DepartureCodes []string
	ArrivalCodes   []string
	SeatClass      string
}

// FlightRepo reads the airplanes table and its seat inventory.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to db.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// GetByKey fetches one flight, or ErrFlightNotFound.
func (r *FlightRepo) GetByKey(ctx context.Context, flightNumber string, departure time.Time) (*model.Flight, error) {
	var f model.Flight
	err := r.db.QueryRowContext(ctx,
		`SELECT flight_number, departure_date_time, airline, departure_airport, arrival_date_time, arrival_airport
		   FROM airplanes WHERE flight_number = ? AND departure_date_time = ?`,
		flightNumber, departure).
		Scan(&f.FlightNumber, &f.DepartureAt, &f.Airline, &f.DepartureAirport, &f.ArrivalAt, &f.ArrivalAirport)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Search joins flights with the inventory of one class and returns the
// rows that still have seats, cheapest first.
func (r *FlightRepo) Search(ctx context.Context, q FlightSearchQuery) ([]model.FlightAvailability, error) {
	if len(q.DepartureCodes) == 0 || len(q.ArrivalCodes) == 0 {
		return []model.FlightAvailability{}, nil
	}
	args := []any{q.From, q.To}
	args = append(args, stringArgs(q.DepartureCodes)...)
	args = append(args, stringArgs(q.ArrivalCodes)...)
	args = append(args, q.SeatClass)

	query := `SELECT a.flight_number, a.departure_date_time, a.airline, a.departure_airport,
			a.arrival_date_time, a.arrival_airport, s.seat_class, s.number_of_seats, s.price
		FROM airplanes a
		JOIN seats s ON s.flight_number = a.flight_number AND s.departure_date_time = a.departure_date_time
		WHERE a.departure_date_time >= ? AND a.departure_date_time < ?
		  AND a.departure_airport IN (` + placeholders(len(q.DepartureCodes)) + `)
		  AND a.arrival_airport IN (` + placeholders(len(q.ArrivalCodes)) + `)
		  AND s.seat_class = ?
		  AND s.number_of_seats > 0
		ORDER BY s.price ASC, a.departure_date_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.FlightAvailability{}
	for rows.Next() {
		var fa model.FlightAvailability
		if err := rows.Scan(&fa.FlightNumber, &fa.DepartureAt, &fa.Airline, &fa.DepartureAirport,
			&fa.ArrivalAt, &fa.ArrivalAirport, &fa.SeatClass, &fa.Available, &fa.Price); err != nil {
			return nil, err
		}
		out = append(out, fa)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
