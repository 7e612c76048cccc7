package types

import (
	"time"

	"github.com/google/uuid"
)

// SubmitPriceRequest submits a regular price or a deal. Enum fields use their snake case names.
type SubmitPriceRequest struct {
	Amount   int64  `json:"amount"`
	DrinkID  int64  `json:"drinkId"`
	FoodItem string `json:"foodItem"`
	IsDeal   bool   `json:"isDeal"`

	DealType    string     `json:"dealType"`
	Target      string     `json:"target"`
	DrinkIDs    []int64    `json:"drinkIds"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// EditPriceRequest changes the amount of a price.
type EditPriceRequest struct {
	Amount int64 `json:"amount"`
}

// VoteRequest casts a vote. Prices take up or down, amenities take yes or no.
type VoteRequest struct {
	Choice string `json:"choice"`
}

// VerifyRequest records a verification of a price.
type VerifyRequest struct {
	IsAccurate     bool   `json:"isAccurate"`
	ProposedAmount *int64 `json:"proposedAmount"`
}

// ReviewRequest creates or replaces the caller's review of a pub.
type ReviewRequest struct {
	Comment string  `json:"comment"`
	Ratings Ratings `json:"ratings"`
}

// PhotoRequest records a photo already uploaded to external storage.
type PhotoRequest struct {
	StorageKey string `json:"storageKey"`
	Caption    string `json:"caption"`
}

// ReportRequest files a report. Fingerprint is only used for anonymous reports.
type ReportRequest struct {
	EntityType  string `json:"entityType"`
	EntityID    int64  `json:"entityId"`
	ReportType  string `json:"reportType"`
	Details     string `json:"details"`
	Fingerprint string `json:"fingerprint"`
}

// ResolveReportRequest closes a report as actioned.
type ResolveReportRequest struct {
	Remove bool `json:"remove"`
}

// DecisionRequest is an admin decision on pending content.
type DecisionRequest struct {
	Action string `json:"action"`
}

// TrustRequest changes a user's trust flag.
type TrustRequest struct {
	Trusted bool `json:"trusted"`
}

// CreatePubRequest adds a pub.
type CreatePubRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	TimeZone string `json:"timeZone"`
}

// DayHours is the opening window of one weekday, 0 being Sunday. Times are HH:MM.
type DayHours struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// SetHoursRequest replaces the opening hours of a pub.
type SetHoursRequest struct {
	Days []DayHours `json:"days"`
}

// ClosedRequest marks a pub permanently closed or reopens it.
type ClosedRequest struct {
	Closed bool `json:"closed"`
}

// UserRef identifies a user in admin responses.
type UserRef struct {
	UserID  uuid.UUID `json:"userId"`
	Trusted bool      `json:"trusted"`
}
