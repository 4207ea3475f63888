package booking

import (
	"math"
	"time"
)

// Penalties withheld from the refund, in KRW.
const (
	PenaltyFifteenDaysOrMore int64 = 150000
	PenaltyFourToFourteen    int64 = 180000
	PenaltyOneToThree        int64 = 250000
)

// DaysBeforeDeparture is the whole number of days between now and
// departure, rounded down.  Less than a day left gives 0; a departure in
// the past gives a negative number.
func DaysBeforeDeparture(departure, now time.Time) int {
	return int(math.Floor(departure.Sub(now).Hours() / 24))
}

// Penalty returns the amount withheld when a reservation paid with
// payment is cancelled days before departure.  Inside the last day the
// whole payment is forfeited.
func Penalty(payment int64, days int) int64 {
	switch {
	case days >= 15:
		return PenaltyFifteenDaysOrMore
	case days >= 4:
		return PenaltyFourToFourteen
	case days >= 1:
		return PenaltyOneToThree
	default:
		return payment
	}
}

// Refund returns payment minus Penalty, never below zero.
func Refund(payment int64, days int) int64 {
	r := payment - Penalty(payment, days)
	if r < 0 {
		return 0
	}
	return r
}
