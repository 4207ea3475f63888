package middleware // reusable HTTP middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

func unauthorized(c echo.Context, msg string) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": msg})
}

// JWTAuth validates a Bearer access token signed with secret (HS256 only)
// and stores the customer number and role claims under CtxCustomerID and
// CtxRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return unauthorized(c, "missing bearer token")
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return unauthorized(c, "invalid token")
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return unauthorized(c, "invalid claims")
            }
            sub, _ := claims["sub"].(string)
            if sub == "" {
                return unauthorized(c, "invalid claims")
            }
            role, _ := claims["role"].(string)

            c.Set(CtxCustomerID, sub)
            c.Set(CtxRole, role)
            return next(c)
        }
    }
}
