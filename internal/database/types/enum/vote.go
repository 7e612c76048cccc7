package enum

// VoteChoice is a single-choice vote cast by a user on a subject.
// Prices take up/down votes while amenities take yes/no votes.
//
//go:generate go tool enumer -type=VoteChoice -trimprefix=VoteChoice -transform=snake
type VoteChoice int

const (
	VoteChoiceUp VoteChoice = iota
	VoteChoiceDown
	VoteChoiceYes
	VoteChoiceNo
)

// IsPositive reports whether the choice counts towards the positive side of a tally.
func (i VoteChoice) IsPositive() bool {
	return i == VoteChoiceUp || i == VoteChoiceYes
}

// IsPriceChoice reports whether the choice is valid for price votes.
func (i VoteChoice) IsPriceChoice() bool {
	return i == VoteChoiceUp || i == VoteChoiceDown
}

// IsAmenityChoice reports whether the choice is valid for amenity votes.
func (i VoteChoice) IsAmenityChoice() bool {
	return i == VoteChoiceYes || i == VoteChoiceNo
}

// VoteOutcome describes what casting a vote did to the stored vote.
//
//go:generate go tool enumer -type=VoteOutcome -trimprefix=VoteOutcome -transform=snake
type VoteOutcome int

const (
	// VoteOutcomeAdded means no vote existed and one was inserted.
	VoteOutcomeAdded VoteOutcome = iota
	// VoteOutcomeReplaced means an opposite vote was updated in place.
	VoteOutcomeReplaced
	// VoteOutcomeRemoved means the same vote was cast again and cleared.
	VoteOutcomeRemoved
)
