package main // Entry point of the fyyur booking service

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/fyyur-trivia/internal/config"
	"github.com/iliyamo/fyyur-trivia/internal/handler"
	"github.com/iliyamo/fyyur-trivia/internal/logging"
	"github.com/iliyamo/fyyur-trivia/internal/middleware"
	"github.com/iliyamo/fyyur-trivia/internal/queue"
	"github.com/iliyamo/fyyur-trivia/internal/repository"
	"github.com/iliyamo/fyyur-trivia/internal/router"
	"github.com/iliyamo/fyyur-trivia/internal/server"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.New(logging.Options{Verbose: cfg.LogVerbose, JSON: cfg.Env == "prod"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := server.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logger.Warn("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	auth := config.LoadAuthConfig()
	qc := config.LoadQueueConfig()
	if qc.Enabled {
		consumer := queue.NewShowConsumer(qc.URL, qc.LogDir, logger)
		go func() { _ = consumer.Run(ctx) }()
	}

	e := router.New(logger, server.Middlewares("booking", rdb)...)
	server.SetEchoLogLevel(e, cfg.LogVerbose)
	router.RegisterRoutes(e, handler.Health{DB: db}, handler.NewAuthHandler(auth))
	router.RegisterBooking(e, handler.NewBookingHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		handler.Clock{Location: cfg.Location},
		server.NewPublisher(qc, logger),
		logger,
	), middleware.AdminOnly(auth.Enabled, auth.JWTSecret))

	logger.Info("booking starting", "env", cfg.Env, "driver", cfg.DBDriver)
	if err := server.Serve(ctx, e, ":"+cfg.Port, logger); err != nil {
		log.Fatal(err)
	}
}
