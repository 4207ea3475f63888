package middleware

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/flight-reservation/internal/config"
    "github.com/iliyamo/flight-reservation/internal/requestid"
    "github.com/iliyamo/flight-reservation/internal/utils"
)

const secret = "test-secret"

func serve(h echo.HandlerFunc, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    return serveReq(e, req, h, mw...)
}

func serveReq(e *echo.Echo, req *http.Request, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    for i := len(mw) - 1; i >= 0; i-- {
        h = mw[i](h)
    }
    _ = h(c)
    return rec, c
}

func ok(c echo.Context) error { return c.String(http.StatusOK, CustomerID(c)+"|"+Role(c)) }

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    tok, err := utils.NewAccessToken(secret, "C1001", "CUSTOMER", 5)
    require.NoError(t, err)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    req.Header.Set("Authorization", "Bearer "+tok.Token)
    rec, _ := serveReq(e, req, ok, JWTAuth(secret))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "C1001|CUSTOMER", rec.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
    other, _ := utils.NewAccessToken("other-secret", "C1001", "CUSTOMER", 5)
    expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub": "C1001", "role": "CUSTOMER", "exp": time.Now().Add(-time.Minute).Unix(),
    })
    expiredStr, _ := expired.SignedString([]byte(secret))
    noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "ADMIN"})
    noSubStr, _ := noSub.SignedString([]byte(secret))

    for name, header := range map[string]string{
        "missing":    "",
        "not bearer": "Basic abc",
        "bad secret": "Bearer " + other.Token,
        "expired":    "Bearer " + expiredStr,
        "no subject": "Bearer " + noSubStr,
        "garbage":    "Bearer x.y.z",
    } {
        t.Run(name, func(t *testing.T) {
            e := echo.New()
            req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
            if header != "" {
                req.Header.Set("Authorization", header)
            }
            rec, _ := serveReq(e, req, ok, JWTAuth(secret))
            assert.Equal(t, http.StatusUnauthorized, rec.Code)
            assert.Contains(t, rec.Body.String(), `"success":false`)
        })
    }
}

func TestRequireRole(t *testing.T) {
    setRole := func(role string) echo.MiddlewareFunc {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error {
                c.Set(CtxCustomerID, "C0001")
                c.Set(CtxRole, role)
                return next(c)
            }
        }
    }
    rec, _ := serve(ok, setRole("ADMIN"), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusOK, rec.Code)

    rec, _ = serve(ok, setRole("CUSTOMER"), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec, _ = serve(ok, RequireRole("ADMIN", "CUSTOMER"))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestContextPropagatesHeader(t *testing.T) {
    var seen string
    h := func(c echo.Context) error {
        seen = requestid.FromContext(c.Request().Context())
        return c.NoContent(http.StatusNoContent)
    }
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
    req.Header.Set(echo.HeaderXRequestID, "req-42")
    serveReq(e, req, h, RequestContext())
    assert.Equal(t, "req-42", seen)

    rec, _ := serve(h, RequestContext())
    assert.NotEmpty(t, seen)
    assert.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRateKeyStrategies(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/flights/search", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/flights/search")

    cfg := config.RateLimitConfig{Prefix: "rl"}
    assert.Equal(t, "rl:ip:10.0.0.1:customer:guest:route:GET /v1/flights/search", rateKey(cfg, c))

    c.Set(CtxCustomerID, "C1001")
    cfg.KeyStrategy = "customer"
    assert.Equal(t, "rl:customer:C1001", rateKey(cfg, c))
    cfg.KeyStrategy = "ip"
    assert.Equal(t, "rl:ip:10.0.0.1", rateKey(cfg, c))
}

func TestRetryAfterSeconds(t *testing.T) {
    assert.Equal(t, 0, retryAfterSeconds(0))
    assert.Equal(t, 1, retryAfterSeconds(1))
    assert.Equal(t, 2, retryAfterSeconds(1001))
    assert.Equal(t, 0, retryAfterSeconds(-50))
}

func TestDisabledRedisMiddlewaresPassThrough(t *testing.T) {
    rc := NewResponseCache(config.CacheConfig{Enabled: true}, nil)
    rc.Invalidate(context.Background())
    rec, _ := serve(ok, rc.Middleware(), NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheKeyChangesWithGeneration(t *testing.T) {
    a := cacheKey("cache:search", 0, "/v1/flights/search", "date=2026-11-20")
    b := cacheKey("cache:search", 1, "/v1/flights/search", "date=2026-11-20")
    c := cacheKey("cache:search", 0, "/v1/flights/search", "date=2026-11-21")
    assert.NotEqual(t, a, b)
    assert.NotEqual(t, a, c)
    assert.Contains(t, a, "cache:search:0:")
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"success":true}`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", got.Get("Content-Type"))
    assert.Equal(t, `{"success":true}`, string(body))

    _, _, _, ok = decodePayload(bs[:5])
    assert.False(t, ok)
}

func TestCaptureWriterDropsOversizedBody(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("def"))
    assert.True(t, cw.over)
    assert.Equal(t, "abcdef", rec.Body.String())
}
