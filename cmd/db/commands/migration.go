package commands

import (
	"context"
	"fmt"

	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// MigrationCommands returns the schema migration commands.
func MigrationCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Create the bun migration bookkeeping tables",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return deps.Migrator.Init(ctx)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending schema migrations",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "dry-run",
					Usage: "List the migrations that would run without applying them",
				},
			},
			Action: migrateAction(deps),
		},
		{
			Name:   "rollback",
			Usage:  "Roll back the most recent migration group",
			Action: rollbackAction(deps),
		},
		{
			Name:   "status",
			Usage:  "List every migration and whether it has been applied",
			Action: statusAction(deps),
		},
		{
			Name:      "create_go",
			Usage:     "Scaffold a new Go migration file",
			ArgsUsage: "NAME",
			Action:    createAction(deps),
		},
	}
}

// withLock runs fn while holding the migration table lock.
func withLock(ctx context.Context, m *migrate.Migrator, fn func() error) error {
	if err := m.Lock(ctx); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer m.Unlock(ctx) //nolint:errcheck // lock is released with the session anyway

	return fn()
}

func migrateAction(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Bool("dry-run") {
			ms, err := deps.Migrator.MigrationsWithStatus(ctx)
			if err != nil {
				return err
			}

			pending := ms.Unapplied()
			for _, m := range pending {
				deps.Logger.Info("Would apply migration", zap.String("name", m.Name), zap.String("comment", m.Comment))
			}
			deps.Logger.Info("Dry run complete", zap.Int("pending", len(pending)))
			return nil
		}

		return withLock(ctx, deps.Migrator, func() error {
			group, err := deps.Migrator.Migrate(ctx)
			if err != nil {
				return err
			}

			if group.IsZero() {
				deps.Logger.Info("Schema is up to date")
				return nil
			}

			deps.Logger.Info("Applied migration group",
				zap.Int64("group", group.ID),
				zap.Int("count", len(group.Migrations)),
				zap.String("migrations", group.Migrations.String()))
			return nil
		})
	}
}

func rollbackAction(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		return withLock(ctx, deps.Migrator, func() error {
			group, err := deps.Migrator.Rollback(ctx)
			if err != nil {
				return err
			}

			if group.IsZero() {
				deps.Logger.Info("Nothing to roll back")
				return nil
			}

			deps.Logger.Info("Rolled back migration group",
				zap.Int64("group", group.ID),
				zap.String("migrations", group.Migrations.String()))
			return nil
		})
	}
}

func statusAction(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		ms, err := deps.Migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}

		for _, m := range ms {
			fields := []zap.Field{zap.String("name", m.Name), zap.Bool("applied", m.IsApplied())}
			if m.IsApplied() {
				fields = append(fields, zap.Int64("group", m.GroupID), zap.Time("migrated_at", m.MigratedAt))
			}
			deps.Logger.Info("Migration", fields...)
		}

		deps.Logger.Info("Migration summary",
			zap.Int("total", len(ms)),
			zap.Int("pending", len(ms.Unapplied())),
			zap.String("last_group", ms.LastGroup().String()))
		return nil
	}
}

func createAction(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrNameRequired
		}

		mf, err := deps.Migrator.CreateGoMigration(ctx, c.Args().First())
		if err != nil {
			return err
		}

		deps.Logger.Info("Created migration file", zap.String("name", mf.Name), zap.String("path", mf.Path))
		return nil
	}
}
