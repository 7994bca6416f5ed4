package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole allows the request only when the role stored by JWTAuth is one
// of roles; anything else is answered with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(ContextRole).(string)
            if !ok || !allowed[role] {
                return echo.NewHTTPError(http.StatusForbidden, "forbidden")
            }
            return next(c)
        }
    }
}

// AdminOnly chains JWTAuth and RequireRole("admin").  When enabled is false
// it lets every request through.
func AdminOnly(enabled bool, secret string) echo.MiddlewareFunc {
    if !enabled {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    auth := JWTAuth(secret)
    admin := RequireRole("admin")
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return auth(admin(next))
    }
}
