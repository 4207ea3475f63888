package model

import "time"

// SeatKey addresses one seat-inventory row.  The same triple identifies
// the flight/class part of a reservation or cancellation.
type SeatKey struct {
    FlightNumber string
    DepartureAt  time.Time
    SeatClass    string
}

// SeatInventory mirrors the `seats` table: the number of seats still
// available for one class on one flight and the fare for that class.
// NumberOfSeats is kept at or above zero by every update this service
// issues.
//
// Fields:
//  FlightNumber  – flight number, part of the key.
//  DepartureAt   – departure time, part of the key.
//  SeatClass     – canonical class name (Business, Economy), part of the key.
//  NumberOfSeats – remaining seats.
//  Price         – fare for one seat in KRW.
type SeatInventory struct {
    FlightNumber  string    `json:"flight_number"`       // seats.flight_number
    DepartureAt   time.Time `json:"departure_date_time"` // seats.departure_date_time
    SeatClass     string    `json:"seat_class"`          // seats.seat_class
    NumberOfSeats int       `json:"number_of_seats"`     // seats.number_of_seats
    Price         int64     `json:"price"`               // seats.price
}

// Key returns the composite key of the inventory row.
func (s SeatInventory) Key() SeatKey {
    return SeatKey{FlightNumber: s.FlightNumber, DepartureAt: s.DepartureAt, SeatClass: s.SeatClass}
}
