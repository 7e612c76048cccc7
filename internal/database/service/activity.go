package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/engine"
	"go.uber.org/zap"
)

// ActivityReader pages the audit trail newest first.
type ActivityReader interface {
	GetLogs(
		ctx context.Context, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
	) ([]*types.ActivityLog, *types.LogCursor, error)
}

// ActivityService exposes the audit trail to admins.
type ActivityService struct {
	logs     ActivityReader
	profiles ProfileReader
	logger   *zap.Logger
}

func NewActivity(logs ActivityReader, profiles ProfileReader, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		logs:     logs,
		profiles: profiles,
		logger:   logger.Named("activity_service"),
	}
}

// History returns one page of audit rows matching filter. The returned cursor is nil on the
// last page.
func (s *ActivityService) History(
	ctx context.Context, adminID uuid.UUID, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
) ([]*types.ActivityLog, *types.LogCursor, error) {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return nil, nil, err
	}
	if limit < 1 {
		return nil, nil, engine.Invalid("limit", "must be positive")
	}
	if filter.StartDate.IsZero() != filter.EndDate.IsZero() {
		return nil, nil, engine.Invalid("range", "start and end must be given together")
	}
	if !filter.StartDate.IsZero() && filter.EndDate.Before(filter.StartDate) {
		return nil, nil, engine.Invalid("range", "end is before start")
	}

	logs, next, err := s.logs.GetLogs(ctx, filter, cursor, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read activity: %w", err)
	}
	return logs, next, nil
}
