package types

import (
	"time"

	"github.com/google/uuid"
)

// Pub is a pub listed in the guide.
type Pub struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	TimeZone          string    `json:"timeZone"`
	PermanentlyClosed bool      `json:"permanentlyClosed"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ListPubsResponse is a page of pubs ordered by id.
type ListPubsResponse struct {
	Pubs []Pub `json:"pubs"`
	// NextAfterID is passed as after_id to fetch the next page. Zero means no more pages.
	NextAfterID int64 `json:"nextAfterId,omitempty"`
}

// PubStatus is the live opening state of a pub.
type PubStatus struct {
	PubID        int64     `json:"pubId"`
	State        string    `json:"state"`
	IsOpen       bool      `json:"isOpen"`
	Detail       string    `json:"detail"`
	MinutesUntil int       `json:"minutesUntil,omitempty"`
	LocalTime    time.Time `json:"localTime"`
}

// Confidence is the trust classification of a price.
type Confidence struct {
	Level          string     `json:"level"`
	RecentAccurate int        `json:"recentAccurate"`
	LastVerifiedAt *time.Time `json:"lastVerifiedAt,omitempty"`
}

// Deal carries the deal fields of a price.
type Deal struct {
	DealType    string     `json:"dealType"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status"`
	StartsLater bool       `json:"startsLater"`
}

// Price is a price or deal with its derived state.
type Price struct {
	ID                int64      `json:"id"`
	PubID             int64      `json:"pubId"`
	Targeting         string     `json:"targeting"`
	DrinkIDs          []int64    `json:"drinkIds,omitempty"`
	FoodItem          string     `json:"foodItem,omitempty"`
	Amount            int64      `json:"amount"`
	IsDeal            bool       `json:"isDeal"`
	Deal              *Deal      `json:"deal,omitempty"`
	SubmittedBy       uuid.UUID  `json:"submittedBy"`
	Upvotes           int32      `json:"upvotes"`
	Downvotes         int32      `json:"downvotes"`
	VerificationCount int32      `json:"verificationCount"`
	Confidence        Confidence `json:"confidence"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ListPricesResponse lists the prices of a pub.
type ListPricesResponse struct {
	Prices []Price `json:"prices"`
}

// Correction is a dissenting amount with its recent supporters.
type Correction struct {
	Amount     int64 `json:"amount"`
	Supporters int   `json:"supporters"`
}

// PriceConfidence is the confidence of a price with its correction signals.
type PriceConfidence struct {
	PriceID        int64        `json:"priceId"`
	Confidence     Confidence   `json:"confidence"`
	Corrections    []Correction `json:"corrections"`
	ProposedAmount *int64       `json:"proposedAmount,omitempty"`
}

// VoteResult is the outcome of a price vote.
type VoteResult struct {
	Outcome   string `json:"outcome"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}

// Amenity is an amenity with its canonical value and the votes behind it.
type Amenity struct {
	Key   string `json:"key"`
	Value *bool  `json:"value"`
	Yes   int    `json:"yes"`
	No    int    `json:"no"`
}

// ListAmenitiesResponse lists the amenities of a pub.
type ListAmenitiesResponse struct {
	Amenities []Amenity `json:"amenities"`
}

// AmenityVoteResult is the outcome of an amenity vote.
type AmenityVoteResult struct {
	Outcome     string  `json:"outcome"`
	Amenity     Amenity `json:"amenity"`
	Overwritten bool    `json:"overwritten"`
}

// ReconcileResult counts the amenity flags a reconcile run changed.
type ReconcileResult struct {
	Overwritten int `json:"overwritten"`
}

// Ratings are the optional review categories, each 1 to 5.
type Ratings struct {
	Atmosphere   *int16 `json:"atmosphere,omitempty"`
	Service      *int16 `json:"service,omitempty"`
	Value        *int16 `json:"value,omitempty"`
	DrinkQuality *int16 `json:"drinkQuality,omitempty"`
	FoodQuality  *int16 `json:"foodQuality,omitempty"`
	Cleanliness  *int16 `json:"cleanliness,omitempty"`
}

// Review is a user's review of a pub.
type Review struct {
	ID        int64     `json:"id"`
	PubID     int64     `json:"pubId"`
	UserID    uuid.UUID `json:"userId"`
	Comment   string    `json:"comment,omitempty"`
	Ratings   Ratings   `json:"ratings"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListReviewsResponse lists the reviews of a pub visible to the caller.
type ListReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

// Photo is a user-submitted photo of a pub.
type Photo struct {
	ID         int64     `json:"id"`
	PubID      int64     `json:"pubId"`
	UserID     uuid.UUID `json:"userId"`
	StorageKey string    `json:"storageKey"`
	Caption    string    `json:"caption,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListPhotosResponse lists the photos of a pub visible to the caller.
type ListPhotosResponse struct {
	Photos []Photo `json:"photos"`
}

// PendingItem is a queued review or photo.
type PendingItem struct {
	EntityType string    `json:"entityType"`
	ID         int64     `json:"id"`
	PubID      int64     `json:"pubId"`
	UserID     uuid.UUID `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	Review     *Review   `json:"review,omitempty"`
	Photo      *Photo    `json:"photo,omitempty"`
}

// QueueResponse is the moderation queue, oldest first.
type QueueResponse struct {
	Items []PendingItem `json:"items"`
}

// DecisionResult is the outcome of an admin decision.
type DecisionResult struct {
	Status           string `json:"status"`
	Deleted          bool   `json:"deleted"`
	SubmitterTrusted bool   `json:"submitterTrusted"`
}

// Report is a report filed against a subject.
type Report struct {
	ID         int64      `json:"id"`
	EntityType string     `json:"entityType"`
	EntityID   int64      `json:"entityId"`
	ReporterID *uuid.UUID `json:"reporterId,omitempty"`
	ReportType string     `json:"reportType"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	ReviewedBy *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ListReportsResponse is a page of pending reports ordered by id.
type ListReportsResponse struct {
	Reports     []Report `json:"reports"`
	NextAfterID int64    `json:"nextAfterId,omitempty"`
}

// ActivityEntry is one row of the audit trail.
type ActivityEntry struct {
	Sequence      int64          `json:"sequence"`
	EntityType    string         `json:"entityType,omitempty"`
	EntityID      int64          `json:"entityId,omitempty"`
	SubjectUserID *uuid.UUID     `json:"subjectUserId,omitempty"`
	ActorID       *uuid.UUID     `json:"actorId,omitempty"`
	ActivityType  string         `json:"activityType"`
	Timestamp     time.Time      `json:"timestamp"`
	Details       map[string]any `json:"details,omitempty"`
}

// ActivityResponse is a page of the audit trail, newest first.
type ActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
	// NextCursor is passed as cursor to fetch the next page. Empty means no more pages.
	NextCursor string `json:"nextCursor,omitempty"`
}
