package middleware

// identity.go exposes the authenticated customer stored by JWTAuth to
// handlers and to the other middleware.

import (
    "github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
    CtxCustomerID = "customer_id"
    CtxRole       = "role"
)

// CustomerID returns the authenticated customer number, or "" when the
// request is anonymous.
func CustomerID(c echo.Context) string {
    if s, ok := c.Get(CtxCustomerID).(string); ok {
        return s
    }
    return ""
}

// Role returns the role claim of the authenticated customer.
func Role(c echo.Context) string {
    if s, ok := c.Get(CtxRole).(string); ok {
        return s
    }
    return ""
}

// rateSubject identifies the caller for rate limiting.
func rateSubject(c echo.Context) string {
    if id := CustomerID(c); id != "" {
        return id
    }
    return "guest"
}
