// Package setup bootstraps the shared dependencies of the pintwise binaries.
package setup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pintwise/pintwise/internal/cache"
	"github.com/pintwise/pintwise/internal/database"
	"github.com/pintwise/pintwise/internal/database/migrations"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/internal/redis"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/pintwise/pintwise/internal/setup/telemetry"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config     // Application configuration
	Logger       *zap.Logger        // Main application logger
	DBLogger     *zap.Logger        // Database-specific logger
	DB           database.Client    // Database connection pool
	RedisManager *redis.Manager     // Redis connection manager
	Metrics      *metrics.Metrics   // Prometheus collectors
	LogManager   *telemetry.Manager // Log management system
	debugServer  *debugServer       // Loopback pprof server
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug, &cfg.Common.Telemetry)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	// Redis manager provides connection pools for the cache
	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	pubCache, err := newPubCache(cfg, redisManager, m, logger)
	if err != nil {
		redisManager.Close()
		return nil, err
	}

	deps := ServiceDeps(cfg, pubCache, m)

	// Initialize database with migration check
	db, err := checkAndRunMigrations(ctx, &cfg.Common.PostgreSQL, deps, dbLogger)
	if err != nil {
		redisManager.Close()
		return nil, err
	}
	m.RegisterDB(db.DB().DB)

	var debugSrv *debugServer
	if cfg.Common.Debug.EnablePprof {
		debugSrv, err = startDebugServer(cfg.Common.Debug.PprofPort, logger)
		if err != nil {
			logger.Error("Failed to start pprof server", zap.Error(err))
		} else {
			logger.Warn("pprof endpoints are enabled, do not run this in production")
		}
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger.Named("database"),
		DB:           db,
		RedisManager: redisManager,
		Metrics:      m,
		LogManager:   logManager,
		debugServer:  debugSrv,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	if s.debugServer != nil {
		s.debugServer.shutdown(ctx)
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Flush spans and close log files
	s.LogManager.Stop(ctx)

	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}

// ServiceDeps builds the business service dependencies from the configuration.
// A nil cache serves every read from PostgreSQL.
func ServiceDeps(cfg *config.Config, pubCache *cache.PubCache, m *metrics.Metrics) database.ServiceDeps {
	return database.ServiceDeps{
		Policies: service.PoliciesFromConfig(&cfg.Common.Engine),
		Cache:    pubCache,
		Metrics:  m,
		Reports: service.ReportLimits{
			FingerprintKey: cfg.API.Reports.FingerprintKey,
			FloodLimit:     cfg.API.Reports.FloodLimit,
			FloodWindow:    time.Duration(cfg.API.Reports.FloodWindow) * time.Minute,
		},
	}
}

// newPubCache creates the Redis backed pub cache, or nil when caching is disabled.
func newPubCache(
	cfg *config.Config, redisManager *redis.Manager, m *metrics.Metrics, logger *zap.Logger,
) (*cache.PubCache, error) {
	if !cfg.API.Cache.Enabled {
		return nil, nil
	}

	client, err := redisManager.Client(redis.CacheDB)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(max(cfg.API.Cache.TTL, 1)) * time.Second
	return cache.NewPubCache(cache.New(client, ttl, m, logger)), nil
}

// checkAndRunMigrations runs database migrations if needed.
func checkAndRunMigrations(
	ctx context.Context, cfg *config.PostgreSQL, deps database.ServiceDeps, dbLogger *zap.Logger,
) (database.Client, error) {
	tempDB := database.Open(cfg, dbLogger)
	defer tempDB.Close()

	migrator := migrate.NewMigrator(tempDB, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}

	autoMigrate := false

	if unapplied := ms.Unapplied(); len(unapplied) > 0 {
		log.Println("Database migrations are pending. Would you like to run them now? (y/N)")

		var response string

		_, _ = fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			log.Fatalf("Closing program due to incomplete migrations")
		}

		autoMigrate = true
	}

	return database.NewConnection(ctx, cfg, deps, dbLogger, autoMigrate)
}
