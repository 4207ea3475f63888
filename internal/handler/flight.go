package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/booking"
    "github.com/iliyamo/flight-reservation/internal/utils"
)

// FlightHandler serves the public flight endpoints.
type FlightHandler struct {
    Search       *booking.FlightSearch
    Reservations *booking.ReservationManager
    Loc          *time.Location
}

func NewFlightHandler(search *booking.FlightSearch, reservations *booking.ReservationManager, loc *time.Location) *FlightHandler {
    return &FlightHandler{Search: search, Reservations: reservations, Loc: loc}
}

// SearchFlights handles GET /v1/flights/search?date=&departure=&arrival=&seat_class=.
func (h *FlightHandler) SearchFlights(c echo.Context) error {
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Search.Search(ctx, booking.SearchRequest{
        Date:      c.QueryParam("date"),
        Departure: c.QueryParam("departure"),
        Arrival:   c.QueryParam("arrival"),
        SeatClass: c.QueryParam("seat_class"),
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": items, "total": len(items)})
}

// Availability handles GET /v1/flights/:flight_number/availability with
// departure_date_time and seat_class query parameters.
func (h *FlightHandler) Availability(c echo.Context) error {
    flight := strings.TrimSpace(c.Param("flight_number"))
    departure, err := utils.ParseDateTime(c.QueryParam("departure_date_time"), h.Loc)
    if err != nil {
        return badRequest(c, "invalid departure_date_time")
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    n, err := h.Reservations.GetAvailable(ctx, flight, departure, c.QueryParam("seat_class"))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":             true,
        "flight_number":       flight,
        "departure_date_time": departure,
        "available":           n,
    })
}
