package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/rest/convert"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ReportService is the report triage functionality the REST API exposes.
type ReportService interface {
	Create(ctx context.Context, sub *service.ReportSubmission, now time.Time) (*types.Report, error)
	Resolve(ctx context.Context, adminID uuid.UUID, reportID int64, remove bool, now time.Time) (*types.Report, error)
	Dismiss(ctx context.Context, adminID uuid.UUID, reportID int64, now time.Time) (*types.Report, error)
	ListPending(ctx context.Context, adminID uuid.UUID, afterID int64, limit int) ([]*types.Report, error)
}

// ReportHandler handles report intake and triage.
type ReportHandler struct {
	reports ReportService
	now     Clock
	logger  *zap.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports ReportService, now Clock, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		now:     now,
		logger:  logger.Named("report_handler"),
	}
}

// CreateReport files a report. Anonymous callers may send a client fingerprint.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ReportRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	entityType, err := parseEnum("entity_type", body.EntityType, enum.EntityTypeString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}
	reportType, err := parseEnum("report_type", body.ReportType, enum.ReportTypeString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	report, err := h.reports.Create(req.Context(), &service.ReportSubmission{
		ReportSubmission: moderation.ReportSubmission{
			EntityType: entityType,
			EntityID:   body.EntityID,
			ReportType: reportType,
			Details:    body.Details,
		},
		ReporterID:  auth.UserFromContext(req.Context()),
		Fingerprint: body.Fingerprint,
	}, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusCreated, convert.Report(report))
}

// ListReports returns a page of pending reports.
func (h *ReportHandler) ListReports(w http.ResponseWriter, req bunrouter.Request) error {
	afterID, limit, err := page(req)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	reports, err := h.reports.ListPending(req.Context(), auth.UserFromContext(req.Context()), afterID, limit)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	response := restTypes.ListReportsResponse{Reports: convert.Reports(reports)}
	if len(reports) == limit {
		response.NextAfterID = reports[len(reports)-1].ID
	}
	return render.JSON(w, http.StatusOK, response)
}

// ResolveReport closes a report as actioned, optionally removing the reported entity.
func (h *ReportHandler) ResolveReport(w http.ResponseWriter, req bunrouter.Request) error {
	reportID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.ResolveReportRequest
	if err := decodeOptional(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	report, err := h.reports.Resolve(req.Context(), auth.UserFromContext(req.Context()), reportID, body.Remove, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.Report(report))
}

// DismissReport closes a report without action.
func (h *ReportHandler) DismissReport(w http.ResponseWriter, req bunrouter.Request) error {
	reportID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	report, err := h.reports.Dismiss(req.Context(), auth.UserFromContext(req.Context()), reportID, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.Report(report))
}
