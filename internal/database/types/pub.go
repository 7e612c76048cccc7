package types

import (
	"errors"
	"time"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/uptrace/bun"
)

var ErrPubNotFound = errors.New("pub not found")

// Pub is a pub listed in the guide.
type Pub struct {
	ID                int64     `bun:",pk,autoincrement"                   json:"id"`
	Name              string    `bun:",notnull"                            json:"name"`
	Address           string    `bun:",notnull,default:''"                 json:"address"`
	TimeZone          string    `bun:",notnull,default:'Europe/London'"    json:"timeZone"`
	PermanentlyClosed bool      `bun:",notnull,default:false"              json:"permanentlyClosed"`
	CreatedAt         time.Time `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time `bun:",notnull,default:current_timestamp" json:"updatedAt"`
}

// PubOpeningHours is one weekday of a pub's opening schedule.
// Empty times mean the hours for that day are not known.
type PubOpeningHours struct {
	bun.BaseModel `bun:"table:pub_opening_hours"`

	PubID     int64  `bun:",pk"       json:"pubId"`
	Weekday   int16  `bun:",pk"       json:"weekday"` // time.Weekday
	OpenTime  string `bun:",nullzero" json:"openTime"`
	CloseTime string `bun:",nullzero" json:"closeTime"`
}

// PubAmenity is the canonical value of an amenity flag, written by consensus or by an admin.
type PubAmenity struct {
	PubID     int64        `bun:",pk"      json:"pubId"`
	Amenity   enum.Amenity `bun:",pk"      json:"amenity"`
	Value     bool         `bun:",notnull" json:"value"`
	UpdatedAt time.Time    `bun:",notnull" json:"updatedAt"`
}

// PubSchedule is a pub with its stored opening hours.
type PubSchedule struct {
	Pub   *Pub               `json:"pub"`
	Hours []*PubOpeningHours `json:"hours"`
}
