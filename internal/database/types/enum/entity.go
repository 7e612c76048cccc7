package enum

// EntityType identifies the kind of subject a vote, report or moderation decision refers to.
//
//go:generate go tool enumer -type=EntityType -trimprefix=EntityType -transform=snake
type EntityType int

const (
	// EntityTypePub is a pub record.
	EntityTypePub EntityType = iota
	// EntityTypePrice is a regular drink or food price.
	EntityTypePrice
	// EntityTypeDeal is a price record flagged as a deal.
	EntityTypeDeal
	// EntityTypeAmenity is a crowd-asserted amenity on a pub.
	EntityTypeAmenity
	// EntityTypeReview is a user review of a pub.
	EntityTypeReview
	// EntityTypePhoto is a user-submitted photo of a pub.
	EntityTypePhoto
)
