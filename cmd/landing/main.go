// Command landing runs the VeLYRA LABS marketing site backend: the
// newsletter and contact form endpoints plus health and docs routes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velyralabs/landing/internal/config"
	"github.com/velyralabs/landing/internal/database"
	"github.com/velyralabs/landing/internal/handler"
	"github.com/velyralabs/landing/internal/logger"
	"github.com/velyralabs/landing/internal/repository"
	"github.com/velyralabs/landing/internal/router"
	"github.com/velyralabs/landing/internal/server"
	"github.com/velyralabs/landing/internal/service"
)

const (
	// DefaultContextTimeout bounds graceful shutdown.
	DefaultContextTimeout = 30 * time.Second

	migrationTimeout = 60 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Store.Driver == config.DriverPostgres && cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		err := database.Migrate(ctx, &log, cfg.Database)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)

	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
