package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

// Vote is a single voter's current choice on a subject.
type Vote struct {
	VoterID   uuid.UUID       `bun:",pk,type:uuid" json:"voterId"`
	Choice    enum.VoteChoice `bun:",notnull"      json:"choice"`
	CreatedAt time.Time       `bun:",notnull"      json:"createdAt"`
	UpdatedAt time.Time       `bun:",notnull"      json:"updatedAt"`
}

// PriceVote is an up/down vote on a price record.
type PriceVote struct {
	PriceID int64 `bun:",pk" json:"priceId"`
	Vote
}

// AmenityVote is a yes/no vote on whether a pub has an amenity.
type AmenityVote struct {
	PubID   int64        `bun:",pk" json:"pubId"`
	Amenity enum.Amenity `bun:",pk" json:"amenity"`
	Vote
}
