package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/caretrack/patientflow/backend/internal/adapters/cache"
	"github.com/caretrack/patientflow/backend/internal/adapters/database"
	"github.com/caretrack/patientflow/backend/internal/adapters/events"
	"github.com/caretrack/patientflow/backend/internal/api/handlers"
	"github.com/caretrack/patientflow/backend/internal/api/middleware"
	"github.com/caretrack/patientflow/backend/internal/api/routes"
	"github.com/caretrack/patientflow/backend/internal/application/services"
	"github.com/caretrack/patientflow/backend/internal/domain/providers"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/clients/postgres"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/clients/redis"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/observability"
	"github.com/caretrack/patientflow/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Server.LogLevel)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Continue without Redis - caching and SSE degrade to polling
		log.Warn().Err(err).Msg("Failed to initialize Redis client")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized")
	} else {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Load the provisioned roster
	rosterRepo := database.NewRosterAdapter(pgClient)
	doctors, err := rosterRepo.ListDoctors(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load doctor roster")
	}
	rooms, err := rosterRepo.ListRooms(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load room roster")
	}
	if len(doctors) == 0 || len(rooms) == 0 {
		log.Warn().
			Int("doctors", len(doctors)).
			Int("rooms", len(rooms)).
			Msg("Roster is incomplete; run scripts/seed to provision doctors and rooms")
	}

	// Initialize the queue coordinator
	coordinator := services.NewQueueCoordinator(doctors, rooms)
	coordinator.SetMetrics(metrics)
	if eventBus != nil {
		coordinator.SetEventBus(eventBus)
		log.Info().Msg("Event bus configured for queue coordinator")
	}

	if err := observability.RegisterQueueGauges(func() observability.QueueDepths {
		stats := coordinator.Stats()
		return observability.QueueDepths{
			Waiting:        int64(stats.WaitingCount),
			InProgress:     int64(stats.InProgressCount),
			AvailableRooms: int64(stats.AvailableRooms),
		}
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to register queue gauges")
	}

	// Background wait-time refresh
	go coordinator.StartPeriodicRecompute(ctx, cfg.Queue.RecomputeInterval)
	log.Info().Dur("interval", cfg.Queue.RecomputeInterval).Msg("Wait time recompute started")

	// Initialize handlers
	queueHandler := handlers.NewQueueHandler(coordinator)
	rosterHandler := handlers.NewRosterHandler(coordinator)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics, cfg.Queue.SnapshotCacheTTLSeconds)
		log.Info().Int("ttl_seconds", cfg.Queue.SnapshotCacheTTLSeconds).Msg("Cache middleware initialized")
	}

	// Set up router
	router := routes.NewRouter(
		queueHandler,
		rosterHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
		cfg.Server.AllowedOrigins,
	)

	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout stays 0: SSE connections are
	// long-lived and must not be cut off by the server.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Stop the recompute loop and SSE subscriptions
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
