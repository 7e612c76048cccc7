package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActivityModel handles database operations for the audit trail.
type ActivityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActivity creates a repository with database access for
// storing and retrieving audited actions.
func NewActivity(db *bun.DB, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		db:     db,
		logger: logger.Named("db_activity"),
	}
}

// Log stores an audited action. Failures are logged and never surface to the caller.
func (r *ActivityModel) Log(ctx context.Context, log *types.ActivityLog) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(log).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to log activity",
			zap.Error(err),
			zap.String("entityType", log.Entity()),
			zap.Int64("entityID", log.EntityID),
			zap.String("actorID", log.ActorID.String()),
			zap.String("activityType", log.ActivityType.String()))
		return
	}

	r.logger.Debug("Logged activity",
		zap.String("entityType", log.Entity()),
		zap.Int64("entityID", log.EntityID),
		zap.String("actorID", log.ActorID.String()),
		zap.String("activityType", log.ActivityType.String()))
}

// LogBatch stores multiple audited actions.
func (r *ActivityModel) LogBatch(ctx context.Context, logs []*types.ActivityLog) {
	if len(logs) == 0 {
		return
	}

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(&logs).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to log batch activities: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to log batch activities",
			zap.Error(err),
			zap.Int("count", len(logs)))
		return
	}

	r.logger.Debug("Logged batch activities", zap.Int("count", len(logs)))
}

// GetLogs retrieves activity logs based on filter criteria, newest first.
func (r *ActivityModel) GetLogs(
	ctx context.Context, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
) ([]*types.ActivityLog, *types.LogCursor, error) {
	var logs []*types.ActivityLog
	var nextCursor *types.LogCursor

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		logs = nil
		query := r.db.NewSelect().Model(&logs)

		if filter.EntityType != nil {
			query = query.Where("entity_type = ?", *filter.EntityType)
		}
		if filter.EntityID != 0 {
			query = query.Where("entity_id = ?", filter.EntityID)
		}
		if filter.SubjectUser != uuid.Nil {
			query = query.Where("subject_user_id = ?", filter.SubjectUser)
		}
		if filter.ActorID != uuid.Nil {
			query = query.Where("actor_id = ?", filter.ActorID)
		}
		if filter.ActivityType != enum.ActivityTypeAll {
			query = query.Where("activity_type = ?", filter.ActivityType)
		}
		if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
			query = query.Where("activity_timestamp BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
		}

		if cursor != nil {
			query = query.Where("(activity_timestamp, sequence) <= (?, ?)", cursor.Timestamp, cursor.Sequence)
		}

		// One extra row tells us whether there is another page
		err := query.Order("activity_timestamp DESC", "sequence DESC").
			Limit(limit + 1).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to get logs: %w", err)
		}

		if len(logs) > limit {
			extra := logs[limit]
			nextCursor = &types.LogCursor{
				Timestamp: extra.ActivityTimestamp,
				Sequence:  extra.Sequence,
			}
			logs = logs[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return logs, nextCursor, nil
}
