package model

import "time"

// Flight represents a row in the `airplanes` table.  A flight is
// identified by its flight number together with its scheduled
// departure; the same flight number repeats on different days.
// Flights are maintained outside this service and never mutated here.
//
// Fields:
//  FlightNumber     – operating flight number (e.g. KE081).
//  DepartureAt      – scheduled departure, part of the key.
//  Airline          – operating airline name.
//  DepartureAirport – IATA code of the origin airport.
//  ArrivalAt        – scheduled arrival.
//  ArrivalAirport   – IATA code of the destination airport.
type Flight struct {
    FlightNumber     string    `json:"flight_number"`       // airplanes.flight_number
    DepartureAt      time.Time `json:"departure_date_time"` // airplanes.departure_date_time
    Airline          string    `json:"airline"`             // airplanes.airline
    DepartureAirport string    `json:"departure_airport"`   // airplanes.departure_airport
    ArrivalAt        time.Time `json:"arrival_date_time"`   // airplanes.arrival_date_time
    ArrivalAirport   string    `json:"arrival_airport"`     // airplanes.arrival_airport
}

// FlightAvailability is one row of a flight search: a flight joined with
// the inventory of one seat class.
type FlightAvailability struct {
    Flight
    SeatClass string `json:"seat_class"`
    Available int    `json:"available"`
    Price     int64  `json:"price"`
}
