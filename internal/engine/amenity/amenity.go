// Package amenity decides when community yes/no votes are strong enough to overwrite a
// pub's canonical amenity flag.
package amenity

import "github.com/pintwise/pintwise/internal/engine/tally"

// Claim summarises the votes on one (pub, amenity) pair.
type Claim struct {
	Yes int
	No  int
}

// FromTally converts a yes/no tally into a claim.
func FromTally(t tally.Tally) Claim {
	return Claim{Yes: t.Positive, No: t.Negative}
}

// Total returns the number of votes.
func (c Claim) Total() int {
	return c.Yes + c.No
}

// Policy holds the consensus thresholds.
type Policy struct {
	// Quorum is the minimum number of votes before any decision is made.
	Quorum int
	// Margin is the lead the majority needs. Values below 1 are treated as 1 so ties never decide.
	Margin int
	// FlipMargin is the lead needed to reverse an already set flag. Values below Margin fall
	// back to Margin, so by default there is no hysteresis.
	FlipMargin int
}

// DefaultPolicy requires three votes and a strict majority.
func DefaultPolicy() Policy {
	return Policy{
		Quorum: 3,
		Margin: 1,
	}
}

// Decision is the consensus for a pair. Value is nil when there is not enough signal.
// Overwrite is set when Value differs from the current canonical flag.
type Decision struct {
	Value     *bool
	Overwrite bool
}

// Reconcile reconciles using the default policy.
func Reconcile(claim Claim, current *bool) Decision {
	return DefaultPolicy().Reconcile(claim, current)
}

// Reconcile computes the consensus for a claim against the current canonical flag, which is
// nil when the pub has never had the flag set. It is pure and idempotent.
func (p Policy) Reconcile(claim Claim, current *bool) Decision {
	if claim.Total() < p.Quorum {
		return Decision{}
	}

	margin := max(p.Margin, 1)
	lead := claim.Yes - claim.No
	value := lead > 0
	if lead < 0 {
		lead = -lead
	}

	if current != nil && *current != value {
		margin = max(margin, p.FlipMargin)
	}

	if lead < margin {
		return Decision{}
	}

	return Decision{
		Value:     &value,
		Overwrite: current == nil || *current != value,
	}
}
