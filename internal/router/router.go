package router // package router defines how HTTP routes are registered for both services

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/fyyur-trivia/internal/handler"
	"github.com/iliyamo/fyyur-trivia/internal/logging"
)

// New returns an Echo instance with the validator, the JSON error envelope,
// request ids, panic recovery and request logging installed.  Extra
// middleware (cache, rate limit, CORS) runs after those, in order.
func New(logger *slog.Logger, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(logger))
	e.Use(mws...)
	return e
}

// RegisterRoutes registers the routes every service exposes: the health
// check and the admin token endpoint.
func RegisterRoutes(e *echo.Echo, health handler.Health, a *handler.AuthHandler) {
	e.GET("/healthz", health.Check)
	e.POST("/auth/token", a.Token)
}

// TriviaCORS allows any origin, matching what the trivia frontend expects.
func TriviaCORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	})
}
