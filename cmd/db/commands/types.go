package commands

import (
	"errors"

	"github.com/pintwise/pintwise/internal/database"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// ErrNameRequired is returned when create_go is called without a migration name.
var ErrNameRequired = errors.New("migration NAME argument is required")

// CLIDependencies is shared by every cmd/db subcommand. Maintenance commands use
// DB; schema commands use Migrator.
type CLIDependencies struct {
	DB       database.Client
	Migrator *migrate.Migrator
	Logger   *zap.Logger
}
