// Package server defines the Server struct that composes the app's main
// dependencies, and the HTTP server lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the store client the form handlers write through
//   - the database pool (postgres store driver only)
//   - the redis client and background job worker (only when redis is configured)
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/config"
	"github.com/velyralabs/landing/internal/database"
	"github.com/velyralabs/landing/internal/lib/email"
	"github.com/velyralabs/landing/internal/lib/job"
	loggerPkg "github.com/velyralabs/landing/internal/logger"
	"github.com/velyralabs/landing/internal/store"
)

// redisPingTimeout bounds the startup redis ping.
const redisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Store is the persistence client shared by every form handler.
	Store store.Client

	// DB is nil unless the postgres store driver is selected.
	DB *database.Database

	// Redis is nil when no redis address is configured.
	Redis *redis.Client

	// Job is nil when follow-up emails are disabled.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes its dependencies.
//
// Notes:
//   - A database that cannot be reached fails startup (postgres driver).
//   - The hosted store is not contacted until the first request or health check.
//   - Redis connection failure does not block startup; emails are best effort.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.New(cfg.Database, cfg.Primary.Env, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
		s.Store = store.NewPostgres(db.Pool)
	default:
		s.Store = store.NewPostgREST(cfg.Store.URL, cfg.Store.APIKey, logger)
	}

	logger.Info().Str("driver", cfg.Store.Driver).Msg("store client ready")

	if cfg.Redis.Enabled() {
		s.Redis = newRedisClient(cfg, logger, loggerService)

		if cfg.Integration.ResendAPIKey == "" {
			logger.Warn().Msg("resend api key missing, follow-up emails disabled")
		} else {
			s.Job = job.NewJobService(logger, cfg, email.NewClient(cfg, logger))
			if err := s.Job.Start(); err != nil {
				return nil, fmt.Errorf("failed to start job server: %w", err)
			}
		}
	}

	return s, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis, continuing without it")
	}

	return redisClient
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the job worker, redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
