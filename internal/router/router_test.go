package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-reservation/internal/booking"
	"github.com/iliyamo/flight-reservation/internal/config"
	"github.com/iliyamo/flight-reservation/internal/handler"
	"github.com/iliyamo/flight-reservation/internal/middleware"
	"github.com/iliyamo/flight-reservation/internal/utils"
)

const secret = "router-secret"

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := booking.NewStores(db)
	manager := booking.NewReservationManager(st, nil, nil)
	engine := booking.NewCancellationEngine(st, nil)
	cache := middleware.NewResponseCache(config.CacheConfig{}, nil)

	e := echo.New()
	RegisterRoutes(e, nil)
	RegisterAuth(e, handler.NewAuthHandler(config.Config{JWTSecret: secret}, st.Customers), secret)
	RegisterFlights(e, handler.NewFlightHandler(booking.NewFlightSearch(st, time.UTC), manager, time.UTC),
		middleware.NewTokenBucket(config.RateLimitConfig{}, nil), cache)
	RegisterReservations(e, handler.NewReservationHandler(manager, engine, cache, time.UTC), secret)
	RegisterAdmin(e, handler.NewAdminHandler(engine), secret)
	return e
}

func do(e *echo.Echo, method, path, cno, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cno != "" {
		tok, _ := utils.NewAccessToken(secret, cno, role, 5)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOperationalRoutes(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newServer(t)
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/v1/me"},
		{http.MethodPost, "/v1/reservations"},
		{http.MethodPost, "/v1/reservations/cancel"},
		{http.MethodGet, "/v1/my-reservations"},
		{http.MethodGet, "/v1/history"},
		{http.MethodGet, "/v1/admin/cancellations/stats"},
	} {
		rec := do(e, r.method, r.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.path)
	}
}

func TestAdminRouteRejectsCustomers(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/v1/admin/cancellations/stats", "C1001", "CUSTOMER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReservationRoutesRejectMissingRole(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/v1/my-reservations", "X1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicSearchValidates(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/v1/flights/search?date=bad", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownV1PathIsNotFound(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/v1/does-not-exist", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
