// Package confidence classifies how much a price record can be trusted from its
// verification history, and surfaces dissenting verifications as correction proposals.
package confidence

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

// Verification is one user's latest check of a price.
type Verification struct {
	UserID     uuid.UUID
	IsAccurate bool
	// ProposedAmount is the price the user saw instead, in minor units.
	ProposedAmount *int64
	VerifiedAt     time.Time
}

// Policy holds the classification thresholds.
type Policy struct {
	// Window is how far back a verification still counts as recent.
	Window time.Duration
	// HighThreshold is the number of recent accurate verifications needed for high confidence.
	HighThreshold int
	// CorrectionQuorum is the number of recent dissenters that must agree on an amount
	// before it is proposed as a correction.
	CorrectionQuorum int
}

// DefaultPolicy returns a 30 day window, a high threshold of 3 and a correction quorum of 2.
func DefaultPolicy() Policy {
	return Policy{
		Window:           30 * 24 * time.Hour,
		HighThreshold:    3,
		CorrectionQuorum: 2,
	}
}

// Result is the classification of a price.
type Result struct {
	Level enum.ConfidenceLevel
	// RecentAccurate counts accurate verifications inside the window.
	RecentAccurate int
	// LastVerifiedAt is the newest accurate verification, if any.
	LastVerifiedAt *time.Time
}

// Classify classifies using the default policy.
func Classify(verifications []Verification, now time.Time) Result {
	return DefaultPolicy().Classify(verifications, now)
}

// Classify derives the confidence level of a price at now.
// Only accurate verifications count. Inaccurate ones never raise or lower the level.
func (p Policy) Classify(verifications []Verification, now time.Time) Result {
	var res Result

	for _, v := range verifications {
		if !v.IsAccurate {
			continue
		}

		if res.LastVerifiedAt == nil || v.VerifiedAt.After(*res.LastVerifiedAt) {
			at := v.VerifiedAt
			res.LastVerifiedAt = &at
		}

		if p.recent(v, now) {
			res.RecentAccurate++
		}
	}

	switch {
	case res.RecentAccurate >= p.HighThreshold:
		res.Level = enum.ConfidenceLevelHigh
	case res.RecentAccurate > 0:
		res.Level = enum.ConfidenceLevelMedium
	default:
		res.Level = enum.ConfidenceLevelLow
	}

	return res
}

func (p Policy) recent(v Verification, now time.Time) bool {
	return !v.VerifiedAt.Before(now.Add(-p.Window))
}

// Correction is a dissenting amount and how many recent users proposed it.
type Correction struct {
	Amount     int64
	Supporters int
}

// Corrections groups recent dissenting verifications by proposed amount, most supported first.
// Dissent without a proposed amount is not a correction signal.
func (p Policy) Corrections(verifications []Verification, now time.Time) []Correction {
	counts := make(map[int64]int)
	for _, v := range verifications {
		if v.IsAccurate || v.ProposedAmount == nil || !p.recent(v, now) {
			continue
		}
		counts[*v.ProposedAmount]++
	}

	corrections := make([]Correction, 0, len(counts))
	for amount, n := range counts {
		corrections = append(corrections, Correction{Amount: amount, Supporters: n})
	}

	slices.SortFunc(corrections, func(a, b Correction) int {
		if a.Supporters != b.Supporters {
			return b.Supporters - a.Supporters
		}
		switch {
		case a.Amount < b.Amount:
			return -1
		case a.Amount > b.Amount:
			return 1
		}
		return 0
	})

	return corrections
}

// Propose returns a corrected amount when enough recent dissenters agree on it and recent
// dissent outnumbers recent confirmation. The price itself is never changed here.
func (p Policy) Propose(verifications []Verification, now time.Time) (int64, bool) {
	var accurate, dissent int
	for _, v := range verifications {
		if !p.recent(v, now) {
			continue
		}
		if v.IsAccurate {
			accurate++
		} else {
			dissent++
		}
	}

	if dissent <= accurate {
		return 0, false
	}

	corrections := p.Corrections(verifications, now)
	if len(corrections) == 0 || corrections[0].Supporters < max(p.CorrectionQuorum, 1) {
		return 0, false
	}

	// A tie between two amounts is not an agreement.
	if len(corrections) > 1 && corrections[1].Supporters == corrections[0].Supporters {
		return 0, false
	}

	return corrections[0].Amount, true
}
