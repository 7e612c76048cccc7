// Package moderation holds the submission gate for user content, the admin decision
// state machine for queued content, and report triage.
package moderation

import (
	"fmt"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
)

// Trust is the subset of a profile the gate reads.
type Trust struct {
	IsTrusted bool
	IsAdmin   bool
}

// Gate decides the initial status of a submission from the submitter's current trust.
func Gate(t Trust) enum.ModerationStatus {
	if t.IsTrusted || t.IsAdmin {
		return enum.ModerationStatusApproved
	}
	return enum.ModerationStatusPending
}

// Decision is what an admin action does to a pending item.
type Decision struct {
	// Status is the status to store. It is meaningless when Delete is set.
	Status enum.ModerationStatus
	// Delete removes the item permanently.
	Delete bool
	// PromoteSubmitter marks the submitter as trusted.
	PromoteSubmitter bool
}

// Decide applies an admin action to an item. Only pending items can be decided.
func Decide(current enum.ModerationStatus, action enum.ModerationAction) (Decision, error) {
	if current != enum.ModerationStatusPending {
		return Decision{}, fmt.Errorf("%w: item is %s", engine.ErrInvalidTransition, current)
	}

	switch action {
	case enum.ModerationActionApprove:
		return Decision{Status: enum.ModerationStatusApproved}, nil
	case enum.ModerationActionApproveAndTrust:
		return Decision{Status: enum.ModerationStatusApproved, PromoteSubmitter: true}, nil
	case enum.ModerationActionReject:
		return Decision{Delete: true}, nil
	}

	return Decision{}, engine.Invalid("action", fmt.Sprintf("unknown moderation action %d", action))
}

// Visible reports whether a viewer may see an item with the given status.
// Pending items are visible to admins only, including to their own submitter.
func Visible(status enum.ModerationStatus, viewerIsAdmin bool) bool {
	return status == enum.ModerationStatusApproved || viewerIsAdmin
}
