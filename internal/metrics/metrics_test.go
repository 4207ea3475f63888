package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/":                  "root",
		"/healthz":           "healthz",
		"/v1/me":             "v1/me",
		"/v1/flights/search": "v1/flights",
		"/v1/flights/:flight_number/availability": "v1/flights",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/probe/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	counter := RequestTotal.WithLabelValues(http.MethodGet, "probe/ok", "200")
	before := counterValue(t, counter)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+1, counterValue(t, counter))
}
