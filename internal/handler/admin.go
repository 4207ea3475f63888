package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/booking"
)

// AdminHandler serves administrator reports.
type AdminHandler struct {
    Engine *booking.CancellationEngine
}

func NewAdminHandler(e *booking.CancellationEngine) *AdminHandler {
    return &AdminHandler{Engine: e}
}

// CancellationStats handles GET /v1/admin/cancellations/stats?top=N.
func (h *AdminHandler) CancellationStats(c echo.Context) error {
    top, _ := strconv.Atoi(c.QueryParam("top"))
    if top < 1 {
        top = 10
    }
    if top > 100 {
        top = 100
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    report, err := h.Engine.Stats(ctx, top)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": report})
}
