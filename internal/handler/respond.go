package handler // HTTP handlers for the flight reservation API

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/booking"
)

// requestTimeout bounds every storage-backed handler.
const requestTimeout = 5 * time.Second

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// statusOf maps a booking error kind to its HTTP status.
func statusOf(err error) int {
    switch booking.KindOf(err) {
    case booking.KindInvalidInput:
        return http.StatusBadRequest
    case booking.KindNotFound:
        return http.StatusNotFound
    case booking.KindConflict, booking.KindExhausted:
        return http.StatusConflict
    }
    return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
    return c.JSON(statusOf(err), echo.Map{"success": false, "message": booking.MessageOf(err)})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
}
