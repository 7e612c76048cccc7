package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrPhotoNotFound  = errors.New("photo not found")
)

// Ratings are the six optional review categories, each 1 to 5.
type Ratings struct {
	Atmosphere   *int16 `bun:"rating_atmosphere"    json:"atmosphere"`
	Service      *int16 `bun:"rating_service"       json:"service"`
	Value        *int16 `bun:"rating_value"         json:"value"`
	DrinkQuality *int16 `bun:"rating_drink_quality" json:"drinkQuality"`
	FoodQuality  *int16 `bun:"rating_food_quality"  json:"foodQuality"`
	Cleanliness  *int16 `bun:"rating_cleanliness"   json:"cleanliness"`
}

// Fields returns the ratings keyed by category name.
func (r Ratings) Fields() map[string]*int16 {
	return map[string]*int16{
		"atmosphere":    r.Atmosphere,
		"service":       r.Service,
		"value":         r.Value,
		"drink_quality": r.DrinkQuality,
		"food_quality":  r.FoodQuality,
		"cleanliness":   r.Cleanliness,
	}
}

// Review is a user's review of a pub. Each user has at most one review per pub.
type Review struct {
	ID         int64     `bun:",pk,autoincrement"                  json:"id"`
	PubID      int64     `bun:",notnull,unique:pub_user"           json:"pubId"`
	UserID     uuid.UUID `bun:",type:uuid,notnull,unique:pub_user" json:"userId"`
	Comment    string    `bun:",nullzero"                          json:"comment"`
	IsApproved bool      `bun:",notnull,default:false"             json:"isApproved"`
	CreatedAt  time.Time `bun:",notnull"                           json:"createdAt"`
	UpdatedAt  time.Time `bun:",notnull"                           json:"updatedAt"`
	Ratings
}

// Status returns the moderation status of the review.
func (r *Review) Status() enum.ModerationStatus {
	return moderationStatus(r.IsApproved)
}

// Photo is a user-submitted photo. The image itself lives in external storage under StorageKey.
type Photo struct {
	ID         int64     `bun:",pk,autoincrement"          json:"id"`
	PubID      int64     `bun:",notnull"                   json:"pubId"`
	UserID     uuid.UUID `bun:",type:uuid,notnull"         json:"userId"`
	StorageKey string    `bun:",notnull,unique"            json:"storageKey"`
	Caption    string    `bun:",nullzero"                  json:"caption"`
	IsApproved bool      `bun:",notnull,default:false"     json:"isApproved"`
	CreatedAt  time.Time `bun:",notnull"                   json:"createdAt"`
}

// Status returns the moderation status of the photo.
func (p *Photo) Status() enum.ModerationStatus {
	return moderationStatus(p.IsApproved)
}

func moderationStatus(approved bool) enum.ModerationStatus {
	if approved {
		return enum.ModerationStatusApproved
	}
	return enum.ModerationStatusPending
}

// PendingItem is a queued review or photo shown to admins.
type PendingItem struct {
	EntityType enum.EntityType `json:"entityType"`
	ID         int64           `json:"id"`
	PubID      int64           `json:"pubId"`
	UserID     uuid.UUID       `json:"userId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Review     *Review         `json:"review,omitempty"`
	Photo      *Photo          `json:"photo,omitempty"`
}
