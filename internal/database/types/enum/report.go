package enum

// ReportStatus is the triage state of a report.
//
//go:generate go tool enumer -type=ReportStatus -trimprefix=ReportStatus -transform=snake
type ReportStatus int

const (
	// ReportStatusPending is awaiting an admin.
	ReportStatusPending ReportStatus = iota
	// ReportStatusReviewed is kept for stored data compatibility and never produced by triage.
	ReportStatusReviewed
	// ReportStatusResolved means an admin acted on the report.
	ReportStatusResolved
	// ReportStatusDismissed means an admin rejected the report.
	ReportStatusDismissed
)

// IsTerminal reports whether no further transition is allowed.
func (i ReportStatus) IsTerminal() bool {
	return i == ReportStatusResolved || i == ReportStatusDismissed
}

// ReportType is the reason given for a report.
//
//go:generate go tool enumer -type=ReportType -trimprefix=ReportType -transform=snake
type ReportType int

const (
	ReportTypeIncorrectInfo ReportType = iota
	ReportTypeSpam
	ReportTypeOffensive
	ReportTypeDuplicate
	ReportTypePermanentlyClosed
	ReportTypeOther
)
