package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health answers load balancer health checks.  With a database attached it also
// pings it and reports 503 when the ping fails.
type Health struct {
    DB *sql.DB
}

// Check handles GET /healthz.
func (h Health) Check(c echo.Context) error {
    if h.DB != nil {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := h.DB.PingContext(ctx); err != nil {
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
