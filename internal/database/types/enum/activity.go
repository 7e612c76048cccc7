package enum

// ActivityType represents different kinds of audited actions in the system.
//
//go:generate go tool enumer -type=ActivityType -trimprefix=ActivityType -transform=snake
type ActivityType int

const (
	// ActivityTypeAll matches any activity type in database queries.
	ActivityTypeAll ActivityType = iota

	// ActivityTypeContentApproved tracks when an admin approves pending content.
	ActivityTypeContentApproved
	// ActivityTypeContentApprovedAndTrusted tracks approvals that also promote the submitter.
	ActivityTypeContentApprovedAndTrusted
	// ActivityTypeContentRejected tracks when an admin rejects and deletes pending content.
	ActivityTypeContentRejected

	// ActivityTypeAmenityOverwritten tracks when consensus overwrites a pub amenity.
	ActivityTypeAmenityOverwritten

	// ActivityTypeReportResolved tracks when an admin resolves a report.
	ActivityTypeReportResolved
	// ActivityTypeReportDismissed tracks when an admin dismisses a report.
	ActivityTypeReportDismissed

	// ActivityTypeProfileTrustChanged tracks manual trust changes by an admin.
	ActivityTypeProfileTrustChanged

	// ActivityTypePriceDeleted tracks when a price is deleted by its owner or an admin.
	ActivityTypePriceDeleted
	// ActivityTypeDealExpired tracks when a deal is expired explicitly.
	ActivityTypeDealExpired

	// ActivityTypeCountersRepaired tracks when the counter audit rewrites drifted counters.
	ActivityTypeCountersRepaired
)
