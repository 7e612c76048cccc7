package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

var ErrPriceNotFound = errors.New("price not found")

// Price is a price record for a drink, a food item or a deal at a pub.
// Upvotes, Downvotes and VerificationCount are caches of the vote and verification rows
// and only change in the same transaction as those rows.
type Price struct {
	ID                int64              `bun:",pk,autoincrement"           json:"id"`
	PubID             int64              `bun:",notnull"                    json:"pubId"`
	TargetingKind     enum.TargetingKind `bun:",notnull"                    json:"targetingKind"`
	DrinkIDs          []int64            `bun:",array"                      json:"drinkIds"`
	FoodItem          string             `bun:",nullzero"                   json:"foodItem"`
	Amount            int64              `bun:",notnull"                    json:"amount"` // minor units
	IsDeal            bool               `bun:",notnull,default:false"      json:"isDeal"`
	DealType          enum.DealType      `bun:",notnull,default:0"          json:"dealType"`
	Description       string             `bun:",nullzero"                   json:"description"`
	DealStartDate     *time.Time         `bun:",nullzero"                   json:"dealStartDate"`
	DealEndDate       *time.Time         `bun:",nullzero"                   json:"dealEndDate"`
	SubmittedBy       uuid.UUID          `bun:",type:uuid,notnull"          json:"submittedBy"`
	Upvotes           int32              `bun:",notnull,default:0"          json:"upvotes"`
	Downvotes         int32              `bun:",notnull,default:0"          json:"downvotes"`
	VerificationCount int32              `bun:",notnull,default:0"          json:"verificationCount"`
	LastVerifiedAt    *time.Time         `bun:",nullzero"                   json:"lastVerifiedAt"`
	CreatedAt         time.Time          `bun:",notnull"                    json:"createdAt"`
	UpdatedAt         time.Time          `bun:",notnull"                    json:"updatedAt"`
}

// PriceVerification is a user's latest check of a price. Only accurate verifications count
// towards VerificationCount.
type PriceVerification struct {
	PriceID        int64     `bun:",pk"           json:"priceId"`
	UserID         uuid.UUID `bun:",pk,type:uuid" json:"userId"`
	IsAccurate     bool      `bun:",notnull"      json:"isAccurate"`
	ProposedAmount *int64    `json:"proposedAmount"`
	VerifiedAt     time.Time `bun:",notnull"      json:"verifiedAt"`
}

// CounterDrift is a price whose cached counters disagree with its vote and verification rows.
type CounterDrift struct {
	PriceID                 int64 `bun:"price_id"`
	StoredUpvotes           int32 `bun:"stored_upvotes"`
	StoredDownvotes         int32 `bun:"stored_downvotes"`
	StoredVerificationCount int32 `bun:"stored_verification_count"`
	ActualUpvotes           int32 `bun:"actual_upvotes"`
	ActualDownvotes         int32 `bun:"actual_downvotes"`
	ActualVerificationCount int32 `bun:"actual_verification_count"`
}
