package model

import "time"

// Cancellation is an append-only record of a cancelled reservation and
// the refund granted for it.
//
// Fields:
//  CustomerID   – customer number (cno).
//  FlightNumber – cancelled flight.
//  DepartureAt  – departure of the cancelled flight.
//  SeatClass    – cancelled class.
//  Refund       – refunded amount in KRW, never negative.
//  CancelledAt  – time the cancellation was committed, part of the key.
type Cancellation struct {
    CustomerID   string    `json:"cno"`                 // cancellations.cno
    FlightNumber string    `json:"flight_number"`       // cancellations.flight_number
    DepartureAt  time.Time `json:"departure_date_time"` // cancellations.departure_date_time
    SeatClass    string    `json:"seat_class"`          // cancellations.seat_class
    Refund       int64     `json:"refund"`              // cancellations.refund
    CancelledAt  time.Time `json:"cancel_date_time"`    // cancellations.cancel_date_time
}

// CancellationStats aggregates every cancellation ever recorded.
type CancellationStats struct {
    TotalCancellations int64 `json:"total_cancellations"`
    TotalRefund        int64 `json:"total_refund"`
}

// CustomerRefundSummary is one row of the per-customer refund ranking
// shown to administrators.
type CustomerRefundSummary struct {
    CNO         string `json:"cno"`
    Name        string `json:"name"`
    CancelCount int64  `json:"cancel_count"`
    TotalRefund int64  `json:"total_refund"`
    MaxRefund   int64  `json:"max_refund"`
}
