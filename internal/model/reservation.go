package model

import (
    "fmt"
    "time"
)

// Reservation records a customer's booking of one seat class on one
// flight.  Rows are created together with the matching seat decrement
// and deleted when the booking is cancelled; they are never updated.
//
// Fields:
//  CustomerID   – customer number (cno) of the booking customer.
//  FlightNumber – booked flight.
//  DepartureAt  – departure of the booked flight.
//  SeatClass    – booked class.
//  Payment      – amount paid in KRW, accepted as given.
//  ReservedAt   – time the booking was committed.
type Reservation struct {
    CustomerID   string    `json:"cno"`                 // reservations.cno
    FlightNumber string    `json:"flight_number"`       // reservations.flight_number
    DepartureAt  time.Time `json:"departure_date_time"` // reservations.departure_date_time
    SeatClass    string    `json:"seat_class"`          // reservations.seat_class
    Payment      int64     `json:"payment"`             // reservations.payment
    ReservedAt   time.Time `json:"reserve_date_time"`   // reservations.reserve_date_time
}

// Key returns the seat-inventory key the reservation draws from.
func (r Reservation) Key() SeatKey {
    return SeatKey{FlightNumber: r.FlightNumber, DepartureAt: r.DepartureAt, SeatClass: r.SeatClass}
}

// ID renders the external identifier used in API responses.
func (r Reservation) ID() string {
    return fmt.Sprintf("%s_%s_%s", r.CustomerID, r.FlightNumber, r.DepartureAt.Format("20060102150405"))
}
