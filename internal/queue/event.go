// Package queue defines message payloads exchanged over the message broker
// and the consumer that processes them.
package queue

import "github.com/iliyamo/flight-reservation/internal/model"

// Queue names.  Routing keys on the default exchange equal the queue name.
const (
    ReservationConfirmedQueue = "reservation.confirmed"
    ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationConfirmedEvent is published after a reservation commits.  It
// carries the recipient and the flight summary so the consumer can send
// the confirmation mail without querying the primary database.
type ReservationConfirmedEvent struct {
    MessageID     string           `json:"message_id"`
    CustomerID    string           `json:"cno"`
    CustomerName  string           `json:"name"`
    CustomerEmail string           `json:"email"`
    Flight        model.FlightInfo `json:"flight"`
    ConfirmedAt   string           `json:"confirmed_at"`
}

// ReservationCancelledEvent is published after a cancellation commits.
type ReservationCancelledEvent struct {
    MessageID    string `json:"message_id"`
    CustomerID   string `json:"cno"`
    FlightNumber string `json:"flight_number"`
    DepartureAt  string `json:"departure_date_time"`
    SeatClass    string `json:"seat_class"`
    Refund       int64  `json:"refund"`
    CancelledAt  string `json:"cancelled_at"`
}
