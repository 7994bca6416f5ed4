// Package server holds the start-up steps shared by the booking and trivia
// binaries: opening the database, building the Redis backed middleware,
// choosing a publisher and serving until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur-trivia/internal/config"
	"github.com/iliyamo/fyyur-trivia/internal/database"
	"github.com/iliyamo/fyyur-trivia/internal/middleware"
	"github.com/iliyamo/fyyur-trivia/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop
// signal.
const ShutdownTimeout = 10 * time.Second

// OpenDB opens the configured database and creates missing tables when
// DB_BOOTSTRAP is set.
func OpenDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBBootstrap {
		if err := database.Bootstrap(ctx, db, cfg.DBDriver); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Middlewares returns the rate limiter and the response cache for service,
// in that order.  Both pass every request through when rdb is nil.
func Middlewares(service string, rdb *redis.Client) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(service), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(service), rdb),
	}
}

// NewPublisher returns an AMQP publisher, or nil when publishing is off.
func NewPublisher(qc config.QueueConfig, logger *slog.Logger) service.Publisher {
	if !qc.Enabled {
		return nil
	}
	return service.NewAMQPPublisher(qc.URL, logger)
}

// SetEchoLogLevel aligns echo's internal logger with LOG_VERBOSE.
func SetEchoLogLevel(e *echo.Echo, verbose bool) {
	if verbose {
		e.Logger.SetLevel(glog.DEBUG)
		return
	}
	e.Logger.SetLevel(glog.WARN)
}

// Serve starts e on addr and blocks until ctx is cancelled or the listener
// fails.  On cancellation the server is shut down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
