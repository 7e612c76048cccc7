package moderation

import (
	"fmt"
	"strings"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
)

// MaxReportDetailsLength bounds the free text attached to a report.
const MaxReportDetailsLength = 1000

// ReportSubmission is a new report before it is stored.
type ReportSubmission struct {
	EntityType enum.EntityType
	EntityID   int64
	ReportType enum.ReportType
	Details    string
}

// ValidateReport checks the fields every report needs. The reporter is optional.
func ValidateReport(s ReportSubmission) error {
	if !s.EntityType.IsAEntityType() {
		return engine.Invalid("entity_type", "unknown entity type")
	}
	if s.EntityID <= 0 {
		return engine.Invalid("entity_id", "must be positive")
	}
	if !s.ReportType.IsAReportType() {
		return engine.Invalid("report_type", "unknown report type")
	}
	if len(strings.TrimSpace(s.Details)) > MaxReportDetailsLength {
		return engine.Invalid("details", fmt.Sprintf("must be at most %d characters", MaxReportDetailsLength))
	}
	if s.ReportType == enum.ReportTypeOther && strings.TrimSpace(s.Details) == "" {
		return engine.Invalid("details", "required when the report type is other")
	}
	return nil
}

// TransitionReport validates a triage transition. Reports only move from pending to
// resolved or dismissed, and both are final.
func TransitionReport(current, next enum.ReportStatus) error {
	if current.IsTerminal() {
		return fmt.Errorf("%w: report is already %s", engine.ErrInvalidTransition, current)
	}
	if current != enum.ReportStatusPending {
		return fmt.Errorf("%w: report is %s", engine.ErrInvalidTransition, current)
	}
	if !next.IsTerminal() {
		return fmt.Errorf("%w: cannot move report to %s", engine.ErrInvalidTransition, next)
	}
	return nil
}
