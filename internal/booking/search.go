package booking

import (
	"context"
	"time"

	"github.com/iliyamo/flight-reservation/internal/alias"
	"github.com/iliyamo/flight-reservation/internal/model"
	"github.com/iliyamo/flight-reservation/internal/repository"
	"github.com/iliyamo/flight-reservation/internal/utils"
)

// SearchRequest holds raw search input.  Date is "YYYY-MM-DD"; airports
// and seat class accept any known alias.
type SearchRequest struct {
	Date      string
	Departure string
	Arrival   string
	SeatClass string
}

// FlightSearch finds bookable flights for one calendar day.
type FlightSearch struct {
	flights *repository.FlightRepo
	loc     *time.Location
}

// NewFlightSearch returns a FlightSearch that interprets dates in loc.
func NewFlightSearch(st Stores, loc *time.Location) *FlightSearch {
	if loc == nil {
		loc = time.UTC
	}
	return &FlightSearch{flights: st.Flights, loc: loc}
}

// Search returns flights departing on req.Date between the resolved
// airports that still have seats in the resolved class, cheapest first.
func (s *FlightSearch) Search(ctx context.Context, req SearchRequest) ([]model.FlightAvailability, error) {
	day, err := utils.ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, newError(KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	dep := alias.AirportCodes(req.Departure)
	arr := alias.AirportCodes(req.Arrival)
	if dep == nil || arr == nil {
		return nil, invalid("departure and arrival airports are required")
	}
	class := alias.SeatClass(req.SeatClass)
	if class == "" {
		return nil, invalid("seat class is required")
	}
	rows, err := s.flights.Search(ctx, repository.FlightSearchQuery{
		From:           day,
		To:             day.AddDate(0, 0, 1),
		DepartureCodes: dep,
		ArrivalCodes:   arr,
		SeatClass:      class,
	})
	if err != nil {
		return nil, newError(KindStorage, "error during search", err)
	}
	return rows, nil
}
