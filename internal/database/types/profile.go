package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile holds the trust flags of a user.
type Profile struct {
	UserID             uuid.UUID `bun:",pk,type:uuid"                    json:"userId"`
	IsTrusted          bool      `bun:",notnull,default:false"           json:"isTrusted"`
	IsAdmin            bool      `bun:",notnull,default:false"           json:"isAdmin"`
	TotalContributions int32     `bun:",notnull,default:0"               json:"totalContributions"`
	CreatedAt          time.Time `bun:",notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt          time.Time `bun:",notnull,default:current_timestamp" json:"updatedAt"`
}
