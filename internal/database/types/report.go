package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

var ErrReportNotFound = errors.New("report not found")

// Report flags a subject for admin attention. ReporterID is nil for anonymous reports.
type Report struct {
	ID                  int64             `bun:",pk,autoincrement"  json:"id"`
	EntityType          enum.EntityType   `bun:",notnull"           json:"entityType"`
	EntityID            int64             `bun:",notnull"           json:"entityId"`
	ReporterID          uuid.UUID         `bun:",type:uuid,nullzero" json:"reporterId"`
	ReporterFingerprint string            `bun:",nullzero"          json:"-"`
	ReportType          enum.ReportType   `bun:",notnull"           json:"reportType"`
	Details             string            `bun:",nullzero"          json:"details"`
	Status              enum.ReportStatus `bun:",notnull"           json:"status"`
	ReviewedBy          uuid.UUID         `bun:",type:uuid,nullzero" json:"reviewedBy"`
	ReviewedAt          *time.Time        `bun:",nullzero"          json:"reviewedAt"`
	CreatedAt           time.Time         `bun:",notnull"           json:"createdAt"`
}
