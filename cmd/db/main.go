package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pintwise/pintwise/cmd/db/commands"
	"github.com/pintwise/pintwise/internal/database"
	"github.com/pintwise/pintwise/internal/database/migrations"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/internal/setup"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// Setup dependencies
	deps, err := setupDependencies()
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer deps.DB.Close()

	app := &cli.Command{
		Name:     "db",
		Usage:    "Database management tool",
		Commands: append(commands.MigrationCommands(deps), commands.MaintenanceCommands(deps)...),
	}

	return app.Run(context.Background(), os.Args)
}

// setupDependencies initializes the database connection and migrator.
func setupDependencies() (*commands.CLIDependencies, error) {
	// Load full configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Create development logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Connect to database without the cache so maintenance reads hit PostgreSQL
	deps := setup.ServiceDeps(cfg, nil, metrics.New())
	db, err := database.NewConnection(context.Background(), &cfg.Common.PostgreSQL, deps, logger, false)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create migrator using database connection and migrations
	migrator := migrate.NewMigrator(db.DB(), migrations.Migrations)

	return &commands.CLIDependencies{
		DB:       db,
		Migrator: migrator,
		Logger:   logger,
	}, nil
}
