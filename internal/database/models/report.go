package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrReportChanged is returned when a report left the expected status before it could be updated.
var ErrReportChanged = errors.New("report status changed")

// ReportModel handles database operations for reports.
type ReportModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReport creates a new report model.
func NewReport(db *bun.DB, logger *zap.Logger) *ReportModel {
	return &ReportModel{
		db:     db,
		logger: logger.Named("db_report"),
	}
}

// Create inserts a new report and fills in its ID.
func (r *ReportModel) Create(ctx context.Context, report *types.Report) error {
	_, err := r.db.NewInsert().
		Model(report).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	r.logger.Debug("Created report",
		zap.Int64("reportID", report.ID),
		zap.String("entityType", report.EntityType.String()),
		zap.Int64("entityID", report.EntityID),
		zap.String("reportType", report.ReportType.String()))
	return nil
}

// Get retrieves a report by ID.
func (r *ReportModel) Get(ctx context.Context, id int64) (*types.Report, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Report, error) {
		var report types.Report
		err := r.db.NewSelect().
			Model(&report).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrReportNotFound
			}
			return nil, fmt.Errorf("failed to get report: %w", err)
		}
		return &report, nil
	})
}

// Transition moves a report from one status to another and records the reviewer.
// The update only applies if the report is still in the expected status.
func (r *ReportModel) Transition(
	ctx context.Context, id int64, from, to enum.ReportStatus, reviewerID uuid.UUID, now time.Time,
) (*types.Report, error) {
	var report types.Report
	result, err := r.db.NewUpdate().
		Model(&report).
		Set("status = ?", to).
		Set("reviewed_by = ?", reviewerID).
		Set("reviewed_at = ?", now).
		Where("id = ?", id).
		Where("status = ?", from).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to transition report: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrReportChanged
	}

	return &report, nil
}

// ListByStatus retrieves reports with a status, oldest first.
func (r *ReportModel) ListByStatus(
	ctx context.Context, status enum.ReportStatus, afterID int64, limit int,
) ([]*types.Report, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Report, error) {
		var reports []*types.Report
		err := r.db.NewSelect().
			Model(&reports).
			Where("status = ?", status).
			Where("id > ?", afterID).
			Order("id ASC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		return reports, nil
	})
}

// CountRecent counts reports filed by a reporter or fingerprint since a time.
func (r *ReportModel) CountRecent(
	ctx context.Context, reporterID uuid.UUID, fingerprint string, since time.Time,
) (int, error) {
	query := r.db.NewSelect().
		Model((*types.Report)(nil)).
		Where("created_at >= ?", since)

	if reporterID != uuid.Nil {
		query = query.Where("reporter_id = ?", reporterID)
	} else {
		query = query.Where("reporter_fingerprint = ?", fingerprint)
	}

	count, err := query.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent reports: %w", err)
	}
	return count, nil
}
