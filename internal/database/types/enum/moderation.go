package enum

// ModerationStatus is the approval state of a review or photo.
// Rejected content is deleted, so there is no rejected state.
//
//go:generate go tool enumer -type=ModerationStatus -trimprefix=ModerationStatus -transform=snake
type ModerationStatus int

const (
	// ModerationStatusPending is only visible to admins.
	ModerationStatusPending ModerationStatus = iota
	// ModerationStatusApproved is publicly visible.
	ModerationStatusApproved
)

// ModerationAction is an admin decision on pending content.
//
//go:generate go tool enumer -type=ModerationAction -trimprefix=ModerationAction -transform=snake
type ModerationAction int

const (
	// ModerationActionApprove publishes the item.
	ModerationActionApprove ModerationAction = iota
	// ModerationActionApproveAndTrust publishes the item and promotes the submitter to trusted.
	ModerationActionApproveAndTrust
	// ModerationActionReject permanently deletes the item.
	ModerationActionReject
)
