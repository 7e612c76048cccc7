package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// ReportStore stores reports.
type ReportStore interface {
	Create(ctx context.Context, report *types.Report) error
	Get(ctx context.Context, id int64) (*types.Report, error)
	Transition(
		ctx context.Context, id int64, from, to enum.ReportStatus, reviewerID uuid.UUID, now time.Time,
	) (*types.Report, error)
	ListByStatus(ctx context.Context, status enum.ReportStatus, afterID int64, limit int) ([]*types.Report, error)
	CountRecent(ctx context.Context, reporterID uuid.UUID, fingerprint string, since time.Time) (int, error)
}

// Deleter deletes one entity by id.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// ReportSubmission is a new report. ReporterID is uuid.Nil for anonymous reports, which may
// carry a client fingerprint instead.
type ReportSubmission struct {
	moderation.ReportSubmission
	ReporterID  uuid.UUID
	Fingerprint string
}

// ReportLimits bounds how many reports one reporter may file.
type ReportLimits struct {
	// FingerprintKey keys the hash of anonymous fingerprints.
	FingerprintKey string
	// FloodLimit is the number of reports allowed per window. Zero disables the limit.
	FloodLimit  int
	FloodWindow time.Duration
}

// ReportService handles report triage.
type ReportService struct {
	reports  ReportStore
	profiles ProfileReader
	removers map[enum.EntityType]Deleter
	limits   ReportLimits
	key      [32]byte
	activity ActivityLogger
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewReport creates a new report service. Removers delete the subject of a resolved report
// and are keyed by entity type.
func NewReport(
	reports ReportStore,
	profiles ProfileReader,
	removers map[enum.EntityType]Deleter,
	limits ReportLimits,
	activity ActivityLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:  reports,
		profiles: profiles,
		removers: removers,
		limits:   limits,
		key:      blake2b.Sum256([]byte(limits.FingerprintKey)),
		activity: activity,
		metrics:  m,
		logger:   logger.Named("report_service"),
	}
}

// Create files a report. Anonymous reports are accepted and counted like attributed ones.
func (s *ReportService) Create(ctx context.Context, sub *ReportSubmission, now time.Time) (*types.Report, error) {
	sub.Details = utils.CompressWhitespacePreserveNewlines(strings.TrimSpace(sub.Details))
	if err := moderation.ValidateReport(sub.ReportSubmission); err != nil {
		return nil, err
	}

	report := &types.Report{
		EntityType: sub.EntityType,
		EntityID:   sub.EntityID,
		ReporterID: sub.ReporterID,
		ReportType: sub.ReportType,
		Details:    sub.Details,
		Status:     enum.ReportStatusPending,
		CreatedAt:  now,
	}
	if sub.ReporterID == uuid.Nil && sub.Fingerprint != "" {
		report.ReporterFingerprint = s.fingerprint(sub.Fingerprint)
	}

	if err := s.checkFlood(ctx, report, now); err != nil {
		return nil, err
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.metrics.ReportTransitioned(enum.ReportStatusPending)
	s.logger.Debug("Report created",
		zap.Int64("reportID", report.ID),
		zap.String("entityType", report.EntityType.String()),
		zap.Int64("entityID", report.EntityID),
		zap.String("reportType", report.ReportType.String()))

	return report, nil
}

// Resolve closes a report as actioned. When remove is set the reported entity is deleted first.
func (s *ReportService) Resolve(
	ctx context.Context, adminID uuid.UUID, reportID int64, remove bool, now time.Time,
) (*types.Report, error) {
	report, err := s.pending(ctx, adminID, reportID, enum.ReportStatusResolved)
	if err != nil {
		return nil, err
	}

	if remove {
		if err := s.remove(ctx, report); err != nil {
			return nil, err
		}
	}

	return s.transition(ctx, adminID, report, enum.ReportStatusResolved, remove, now)
}

// Dismiss closes a report without action.
func (s *ReportService) Dismiss(
	ctx context.Context, adminID uuid.UUID, reportID int64, now time.Time,
) (*types.Report, error) {
	report, err := s.pending(ctx, adminID, reportID, enum.ReportStatusDismissed)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, adminID, report, enum.ReportStatusDismissed, false, now)
}

// ListPending returns pending reports, oldest first.
func (s *ReportService) ListPending(
	ctx context.Context, adminID uuid.UUID, afterID int64, limit int,
) ([]*types.Report, error) {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return nil, err
	}

	reports, err := s.reports.ListByStatus(ctx, enum.ReportStatusPending, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// pending checks the admin and that the report may move to next.
func (s *ReportService) pending(
	ctx context.Context, adminID uuid.UUID, reportID int64, next enum.ReportStatus,
) (*types.Report, error) {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return nil, err
	}

	report, err := s.reports.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", storeError(err))
	}
	if err := moderation.TransitionReport(report.Status, next); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *ReportService) transition(
	ctx context.Context, adminID uuid.UUID, report *types.Report, next enum.ReportStatus, removed bool,
	now time.Time,
) (*types.Report, error) {
	updated, err := s.reports.Transition(ctx, report.ID, enum.ReportStatusPending, next, adminID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", storeError(err))
	}

	s.metrics.ReportTransitioned(next)

	activityType := enum.ActivityTypeReportResolved
	if next == enum.ReportStatusDismissed {
		activityType = enum.ActivityTypeReportDismissed
	}
	s.activity.Log(ctx, &types.ActivityLog{
		EntityType:        types.EntityRef(report.EntityType),
		EntityID:          report.EntityID,
		ActorID:           adminID,
		ActivityType:      activityType,
		ActivityTimestamp: now,
		Details: map[string]any{
			"report_id":   report.ID,
			"report_type": report.ReportType.String(),
			"removed":     removed,
		},
	})

	return updated, nil
}

// remove deletes the reported entity. An entity that is already gone counts as removed.
func (s *ReportService) remove(ctx context.Context, report *types.Report) error {
	rules, err := moderation.RulesFor(report.EntityType)
	if err != nil {
		return engine.Invalid("entity_type", err.Error())
	}
	if !rules.Removable {
		return engine.Invalid("remove", report.EntityType.String()+" cannot be removed through a report")
	}

	remover, ok := s.removers[report.EntityType]
	if !ok {
		return fmt.Errorf("no remover registered for %s", report.EntityType)
	}

	if err := remover.Delete(ctx, report.EntityID); err != nil {
		if errors.Is(storeError(err), engine.ErrNotFound) {
			s.logger.Info("Reported entity already removed",
				zap.Int64("reportID", report.ID),
				zap.String("entityType", report.EntityType.String()),
				zap.Int64("entityID", report.EntityID))
			return nil
		}
		return fmt.Errorf("failed to remove %s: %w", report.EntityType, err)
	}

	return nil
}

// checkFlood rejects a report when its reporter has filed too many within the window.
// Anonymous reports without a fingerprint are not limited here.
func (s *ReportService) checkFlood(ctx context.Context, report *types.Report, now time.Time) error {
	if s.limits.FloodLimit <= 0 || s.limits.FloodWindow <= 0 {
		return nil
	}
	if report.ReporterID == uuid.Nil && report.ReporterFingerprint == "" {
		return nil
	}

	count, err := s.reports.CountRecent(ctx, report.ReporterID, report.ReporterFingerprint, now.Add(-s.limits.FloodWindow))
	if err != nil {
		return fmt.Errorf("failed to count recent reports: %w", err)
	}
	if count >= s.limits.FloodLimit {
		return fmt.Errorf("%w: at most %d reports per %s", engine.ErrRateLimited, s.limits.FloodLimit, s.limits.FloodWindow)
	}

	return nil
}

// fingerprint hashes a client fingerprint so raw identifiers are never stored.
func (s *ReportService) fingerprint(raw string) string {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		// A 32 byte key is always valid
		panic(err)
	}
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
