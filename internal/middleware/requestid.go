package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/requestid"
)

// RequestContext copies the X-Request-Id assigned by echo's RequestID
// middleware into the request context so the booking layer can log it.
// When no id was assigned one is generated and echoed back.
func RequestContext() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id := c.Response().Header().Get(echo.HeaderXRequestID)
            if id == "" {
                id = c.Request().Header.Get(echo.HeaderXRequestID)
            }
            if id == "" {
                id = requestid.Generate()
                c.Response().Header().Set(echo.HeaderXRequestID, id)
            }
            r := c.Request()
            c.SetRequest(r.WithContext(requestid.NewContext(r.Context(), id)))
            return next(c)
        }
    }
}
