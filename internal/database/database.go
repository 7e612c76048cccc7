package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pintwise/pintwise/internal/database/migrations"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bunjson"
	"github.com/uptrace/bun/extra/bunotel"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// sonicProvider makes bun encode JSON columns with sonic.
type sonicProvider struct{}

func (sonicProvider) Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func (sonicProvider) Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

func (sonicProvider) NewEncoder(w io.Writer) bunjson.Encoder {
	return sonic.ConfigDefault.NewEncoder(w)
}

func (sonicProvider) NewDecoder(r io.Reader) bunjson.Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}

// Client is the database handle shared by every command.
type Client interface {
	Model() *Repository
	Service() *Service
	Close() error
	// DB exposes the bun handle for migrations, health checks and pool metrics.
	DB() *bun.DB
}

type client struct {
	db      *bun.DB
	logger  *zap.Logger
	repo    *Repository
	service *Service
}

// NewConnection opens the pool, checks it answers and wires the models and services. With
// autoMigrate set, pending migrations are applied before the client is returned.
func NewConnection(
	ctx context.Context, cfg *config.PostgreSQL, deps ServiceDeps, logger *zap.Logger, autoMigrate bool,
) (Client, error) {
	db := Open(cfg, logger)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	if autoMigrate {
		if err := migrateUp(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	repo := NewRepository(db, logger)
	logger.Info("Connected to postgres", zap.String("database", cfg.DBName))

	return &client{
		db:      db,
		logger:  logger,
		repo:    repo,
		service: NewService(repo, deps, logger),
	}, nil
}

func migrateUp(ctx context.Context, db *bun.DB, logger *zap.Logger) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to create migration tables: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if !group.IsZero() {
		logger.Info("Applied pending migrations", zap.Int64("group", group.ID), zap.Int("count", len(group.Migrations)))
	}
	return nil
}

// Open creates a bun.DB for the configured PostgreSQL server without touching the network.
func Open(cfg *config.PostgreSQL, logger *zap.Logger) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithInsecure(!cfg.TLS),
		pgdriver.WithApplicationName("pintwise"),
	))

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)
	sqldb.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Minute)

	bunjson.SetProvider(sonicProvider{})

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(NewHook(logger))
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.DBName)))

	return db
}

func (c *client) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close postgres pool: %w", err)
	}
	c.logger.Info("Postgres pool closed")
	return nil
}

func (c *client) Model() *Repository { return c.repo }

func (c *client) Service() *Service { return c.service }

func (c *client) DB() *bun.DB { return c.db }
