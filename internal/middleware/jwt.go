package middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
    ContextSubject = "subject"
    ContextRole    = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// signed with secret (HS256) and stores its subject and role claims in the
// context under ContextSubject and ContextRole.  Failures are returned as
// 401 HTTP errors so the shared error handler renders them.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
            if err != nil || !tok.Valid {
                return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
            }
            sub, _ := claims.GetSubject()
            c.Set(ContextSubject, sub)
            c.Set(ContextRole, claims["role"])
            return next(c)
        }
    }
}
