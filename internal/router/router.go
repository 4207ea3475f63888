package router // route registration for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/flight-reservation/internal/handler"
	"github.com/iliyamo/flight-reservation/internal/middleware"
	"github.com/iliyamo/flight-reservation/internal/model"
)

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers login and registration under /v1/auth and the
// profile endpoint under /v1.  Middleware on /v1 is attached per route so
// unknown /v1 paths stay 404.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterFlights registers the public flight endpoints.  Search goes
// through the rate limiter and the response cache, in that order.
func RegisterFlights(e *echo.Echo, f *handler.FlightHandler, limit echo.MiddlewareFunc, cache *middleware.ResponseCache) {
	g := e.Group("/v1/flights")
	g.GET("/search", f.SearchFlights, limit, cache.Middleware())
	g.GET("/:flight_number/availability", f.Availability, limit)
}

// RegisterReservations registers the customer endpoints.  Administrators
// may book and cancel for themselves too.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	mw := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	}
	g := e.Group("/v1")
	g.POST("/reservations", r.Create, mw...)
	g.POST("/reservations/cancel", r.Cancel, mw...)
	g.GET("/my-reservations", r.MyReservations, mw...)
	g.GET("/my-cancellations", r.MyCancellations, mw...)
	g.GET("/history", r.History, mw...)
}

// RegisterAdmin registers ADMIN-only reports.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/cancellations/stats", a.CancellationStats)
}
