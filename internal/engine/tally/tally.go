// Package tally implements single-choice voting with toggle and replace semantics.
//
// Each (subject, voter) pair holds at most one choice. Casting the stored choice again
// clears it, casting a different choice replaces it. Counters kept elsewhere are caches
// of Count and must only change by the Delta returned from Apply.
package tally

import "github.com/pintwise/pintwise/internal/database/types/enum"

// Delta is the change a cast makes to the positive and negative counters.
type Delta struct {
	Positive int
	Negative int
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Positive == 0 && d.Negative == 0
}

// Result is the outcome of casting a vote against the existing one.
type Result struct {
	// Next is the choice to store, or nil when the vote must be deleted.
	Next    *enum.VoteChoice
	Outcome enum.VoteOutcome
	Delta   Delta
}

// Apply decides what a cast does given the voter's existing choice, which is nil when
// the voter has not voted on the subject.
func Apply(existing *enum.VoteChoice, cast enum.VoteChoice) Result {
	next := cast

	switch {
	case existing == nil:
		return Result{
			Next:    &next,
			Outcome: enum.VoteOutcomeAdded,
			Delta:   add(Delta{}, cast, 1),
		}

	case *existing == cast:
		return Result{
			Outcome: enum.VoteOutcomeRemoved,
			Delta:   add(Delta{}, cast, -1),
		}

	default:
		return Result{
			Next:    &next,
			Outcome: enum.VoteOutcomeReplaced,
			Delta:   add(add(Delta{}, *existing, -1), cast, 1),
		}
	}
}

func add(d Delta, choice enum.VoteChoice, n int) Delta {
	if choice.IsPositive() {
		d.Positive += n
	} else {
		d.Negative += n
	}
	return d
}

// Tally is the aggregate of all votes on a subject.
type Tally struct {
	Positive int
	Negative int
}

// Count rebuilds a tally from the stored choices of a subject.
func Count(choices []enum.VoteChoice) Tally {
	var t Tally
	for _, choice := range choices {
		if choice.IsPositive() {
			t.Positive++
		} else {
			t.Negative++
		}
	}
	return t
}

// Total returns the number of votes.
func (t Tally) Total() int {
	return t.Positive + t.Negative
}

// Net returns positive minus negative votes.
func (t Tally) Net() int {
	return t.Positive - t.Negative
}

// Apply returns the tally after applying a delta.
func (t Tally) Apply(d Delta) Tally {
	return Tally{
		Positive: t.Positive + d.Positive,
		Negative: t.Negative + d.Negative,
	}
}
