package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/handler"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/middleware"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/config"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository/jsonfile"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository/postgresql"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/service"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()

	var clientRepo repository.ClientRepository
	var appointmentRepo repository.AppointmentRepository

	switch cfg.DBDriver {
	case "postgres":
		db, err := postgresql.NewDB(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not connect to database")
		}
		defer db.Close()
		if err := postgresql.ApplyMigrations(context.Background(), db, "db/migrations/001_init.sql"); err != nil {
			logger.Warn().Err(err).Msg("migration skipped")
		}
		clientRepo = postgresql.NewPgClientRepository(db)
		appointmentRepo = postgresql.NewPgAppointmentRepository(db)
		logger.Info().Str("driver", "postgres").Str("db", cfg.DBName).Msg("storage ready")
	default:
		store, err := jsonfile.Open(cfg.DBFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not open data file")
		}
		clientRepo = jsonfile.NewClientRepository(store)
		appointmentRepo = jsonfile.NewAppointmentRepository(store)
		logger.Info().Str("driver", "jsonfile").Str("file", cfg.DBFile).Msg("storage ready")
	}

	clientService := service.NewClientService(clientRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, clientRepo)

	clientHandler := handler.NewClientHandler(clientService)
	carHandler := handler.NewCarHandler(clientService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := api.SetupRouter(clientHandler, carHandler, appointmentHandler, rl, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}
