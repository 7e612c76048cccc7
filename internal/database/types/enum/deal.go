package enum

// DealType is the broad category of a deal submission.
//
//go:generate go tool enumer -type=DealType -trimprefix=DealType -transform=snake
type DealType int

const (
	// DealTypeDrink is a drinks-only deal.
	DealTypeDrink DealType = iota
	// DealTypeFoodCombo bundles drinks with a food item.
	DealTypeFoodCombo
	// DealTypeFoodOnly is a food deal with no drink targeting.
	DealTypeFoodOnly
)

// RequiresFood reports whether the deal type needs a food item.
func (i DealType) RequiresFood() bool {
	return i == DealTypeFoodCombo || i == DealTypeFoodOnly
}

// DealTarget is the drink targeting mode chosen by the submitter.
//
//go:generate go tool enumer -type=DealTarget -trimprefix=DealTarget -transform=snake
type DealTarget int

const (
	// DealTargetSpecific applies to the listed drinks.
	DealTargetSpecific DealTarget = iota
	// DealTargetAllPints applies to every pint.
	DealTargetAllPints
	// DealTargetAllDrinks applies to every drink.
	DealTargetAllDrinks
)

// TargetingKind is the canonical stored form of a price's drink targeting.
//
//go:generate go tool enumer -type=TargetingKind -trimprefix=TargetingKind -transform=snake
type TargetingKind int

const (
	TargetingKindSingle TargetingKind = iota
	TargetingKindMultiChoice
	TargetingKindAllPints
	TargetingKindAllDrinks
	TargetingKindNone
)

// IsSentinel reports whether the kind covers a whole category instead of listed drinks.
func (i TargetingKind) IsSentinel() bool {
	return i == TargetingKindAllPints || i == TargetingKindAllDrinks
}

// DealStatus is the derived live status of a deal.
//
//go:generate go tool enumer -type=DealStatus -trimprefix=DealStatus -transform=snake
type DealStatus int

const (
	DealStatusActive DealStatus = iota
	DealStatusExpired
)
