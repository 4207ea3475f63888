package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/booking"
    "github.com/iliyamo/flight-reservation/internal/middleware"
    "github.com/iliyamo/flight-reservation/internal/model"
    "github.com/iliyamo/flight-reservation/internal/utils"
)

// CacheInvalidator drops cached search responses after seat counts change.
type CacheInvalidator interface {
    Invalidate(ctx context.Context)
}

// ReservationHandler serves the authenticated reservation endpoints.  The
// customer always comes from the access token, never from the body.
type ReservationHandler struct {
    Manager *booking.ReservationManager
    Engine  *booking.CancellationEngine
    Cache   CacheInvalidator
    Loc     *time.Location
    now     func() time.Time
}

func NewReservationHandler(m *booking.ReservationManager, e *booking.CancellationEngine, cache CacheInvalidator, loc *time.Location) *ReservationHandler {
    if m == nil || e == nil {
        panic("nil booking component passed to NewReservationHandler")
    }
    if loc == nil {
        loc = time.UTC
    }
    return &ReservationHandler{Manager: m, Engine: e, Cache: cache, Loc: loc, now: time.Now}
}

type reservationReq struct {
    FlightNumber      string `json:"flight_number"`
    DepartureDateTime string `json:"departure_date_time"`
    SeatClass         string `json:"seat_class"`
    Payment           int64  `json:"payment"`
}

// cancelReq carries no amount: the refund is always computed from the
// payment stored on the reservation.
type cancelReq struct {
    FlightNumber      string `json:"flight_number"`
    DepartureDateTime string `json:"departure_date_time"`
    SeatClass         string `json:"seat_class"`
}

func (h *ReservationHandler) invalidate(ctx context.Context) {
    if h.Cache != nil {
        h.Cache.Invalidate(ctx)
    }
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid request body")
    }
    departure, err := utils.ParseDateTime(req.DepartureDateTime, h.Loc)
    if err != nil {
        return badRequest(c, "invalid departure_date_time")
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    out, err := h.Manager.Create(ctx, booking.CreateRequest{
        CustomerID:   middleware.CustomerID(c),
        FlightNumber: req.FlightNumber,
        DepartureAt:  departure,
        SeatClass:    req.SeatClass,
        Payment:      req.Payment,
    })
    if err != nil {
        return fail(c, err)
    }
    h.invalidate(ctx)
    return c.JSON(http.StatusCreated, echo.Map{
        "success":        true,
        "message":        out.Message,
        "reservation_id": out.ID,
        "reservation":    out.Reservation,
        "price":          utils.FormatWon(out.Reservation.Payment),
        "email_sent":     out.Notified,
        "email_status":   out.NotifyStatus,
        "email_message":  out.NotifyMessage,
    })
}

// Cancel handles POST /v1/reservations/cancel.  Only reservations whose
// flight has not departed yet can be cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    var req cancelReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid request body")
    }
    departure, err := utils.ParseDateTime(req.DepartureDateTime, h.Loc)
    if err != nil {
        return badRequest(c, "invalid departure_date_time")
    }
    if !departure.After(h.now()) {
        return badRequest(c, "flights that have already departed cannot be cancelled")
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    out, err := h.Engine.Cancel(ctx, booking.CancelRequest{
        CustomerID:   middleware.CustomerID(c),
        FlightNumber: req.FlightNumber,
        DepartureAt:  departure,
        SeatClass:    req.SeatClass,
    })
    if err != nil {
        return fail(c, err)
    }
    h.invalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{
        "success":               true,
        "message":               out.Message,
        "cancellation":          out.Cancellation,
        "payment":               out.Payment,
        "penalty":               out.Penalty,
        "refund":                out.Cancellation.Refund,
        "days_before_departure": out.DaysBeforeDeparture,
    })
}

// MyReservations handles GET /v1/my-reservations.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
    ctx, cancel := withTimeout(c)
    defer cancel()

    list, err := h.Manager.ListForCustomer(ctx, middleware.CustomerID(c), booking.HistoryFilter{})
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "total": len(list)})
}

// MyCancellations handles GET /v1/my-cancellations.
func (h *ReservationHandler) MyCancellations(c echo.Context) error {
    ctx, cancel := withTimeout(c)
    defer cancel()

    list, err := h.Engine.ListForCustomer(ctx, middleware.CustomerID(c), booking.HistoryFilter{})
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "total": len(list)})
}

// History handles GET /v1/history?type=all|reservation|cancellation
// &start_date=&end_date=.  Dates bound the departure and end_date is
// inclusive.
func (h *ReservationHandler) History(c echo.Context) error {
    kind := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
    if kind == "" {
        kind = "all"
    }
    if kind != "all" && kind != "reservation" && kind != "cancellation" {
        return badRequest(c, "type must be all, reservation or cancellation")
    }
    var f booking.HistoryFilter
    if s := c.QueryParam("start_date"); s != "" {
        d, err := utils.ParseDate(s, h.Loc)
        if err != nil {
            return badRequest(c, "invalid start_date, expected YYYY-MM-DD")
        }
        f.From = d
    }
    if s := c.QueryParam("end_date"); s != "" {
        d, err := utils.ParseDate(s, h.Loc)
        if err != nil {
            return badRequest(c, "invalid end_date, expected YYYY-MM-DD")
        }
        f.To = d.AddDate(0, 0, 1)
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    cno := middleware.CustomerID(c)
    reservations := []model.Reservation{}
    cancellations := []model.Cancellation{}
    if kind != "cancellation" {
        list, err := h.Manager.ListForCustomer(ctx, cno, f)
        if err != nil {
            return fail(c, err)
        }
        reservations = append(reservations, list...)
    }
    if kind != "reservation" {
        list, err := h.Engine.ListForCustomer(ctx, cno, f)
        if err != nil {
            return fail(c, err)
        }
        cancellations = append(cancellations, list...)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":       true,
        "type":          kind,
        "reservations":  reservations,
        "cancellations": cancellations,
    })
}
