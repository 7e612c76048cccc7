package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

const (
	slowQuery      = 500 * time.Millisecond
	maxLoggedQuery = 2048
)

// Hook logs failed and slow queries. Everything else goes to debug.
type Hook struct {
	logger *zap.Logger
}

func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger.Named("db_query")}
}

func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)
	fields := []zap.Field{
		zap.String("op", event.Operation()),
		zap.String("query", clipQuery(event.Query)),
		zap.Duration("elapsed", elapsed),
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		h.logger.Error("Query failed", append(fields, zap.Error(event.Err))...)
	case elapsed > slowQuery:
		h.logger.Warn("Slow query", fields...)
	default:
		if ce := h.logger.Check(zap.DebugLevel, "Query"); ce != nil {
			ce.Write(fields...)
		}
	}
}

// clipQuery keeps bulk inserts from flooding the log.
func clipQuery(query string) string {
	if len(query) <= maxLoggedQuery {
		return query
	}
	return query[:maxLoggedQuery] + "...(truncated)"
}
