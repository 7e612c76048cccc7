package types

import "time"

const (
	// EngineVersion represents the version of the export engine.
	// This should be updated when making breaking changes to the export format.
	EngineVersion = "1.0.0"
)

// PubRecord is a pub in the snapshot.
type PubRecord struct {
	ID                int64
	Name              string
	TimeZone          string
	PermanentlyClosed bool
}

// AmenityRecord is the canonical value of one amenity with the votes behind it.
// Value is nil while the amenity is undecided.
type AmenityRecord struct {
	PubID int64
	Key   string
	Value *bool
	Yes   int
	No    int
}

// PriceRecord is a price or deal with its derived state at the snapshot instant.
type PriceRecord struct {
	ID             int64
	PubID          int64
	Targeting      string
	Amount         int64
	IsDeal         bool
	DealType       string
	DealStatus     string
	StartsLater    bool
	Confidence     string
	RecentAccurate int
	Upvotes        int32
	Downvotes      int32
}

// Snapshot is the derived truth of every pub as of At.
type Snapshot struct {
	At        time.Time
	Pubs      []*PubRecord
	Amenities []*AmenityRecord
	Prices    []*PriceRecord
}
