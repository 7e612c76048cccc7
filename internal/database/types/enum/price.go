package enum

// ConfidenceLevel is the trust classification of a price record.
//
//go:generate go tool enumer -type=ConfidenceLevel -trimprefix=ConfidenceLevel -transform=snake
type ConfidenceLevel int

const (
	// ConfidenceLevelLow means the price is unverified or has no recent verification.
	ConfidenceLevelLow ConfidenceLevel = iota
	// ConfidenceLevelMedium means at least one recent accurate verification.
	ConfidenceLevelMedium
	// ConfidenceLevelHigh means recent accurate verifications reached the threshold.
	ConfidenceLevelHigh
)
