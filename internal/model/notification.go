package model

import "time"

// FlightInfo is the flight summary handed to the notifier after a
// reservation commits.  Fields left empty are rendered as "unknown" by
// the notifier.  CustomerID identifies the booking customer in logs.
type FlightInfo struct {
    CustomerID       string    `json:"cno,omitempty"`
    FlightNumber     string    `json:"flight_number"`
    Airline          string    `json:"airline"`
    DepartureAt      time.Time `json:"departure_date_time"`
    DepartureAirport string    `json:"departure_airport"`
    ArrivalAt        time.Time `json:"arrival_date_time"`
    ArrivalAirport   string    `json:"arrival_airport"`
    SeatClass        string    `json:"seat_class"`
    Price            int64     `json:"price"`
}
