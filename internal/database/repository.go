package database

import (
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	pub        *models.PubModel
	vote       *models.VoteModel
	price      *models.PriceModel
	review     *models.ReviewModel
	photo      *models.PhotoModel
	moderation *models.ModerationModel
	profile    *models.ProfileModel
	report     *models.ReportModel
	activity   *models.ActivityModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		pub:        models.NewPub(db, logger),
		vote:       models.NewVote(db, logger),
		price:      models.NewPrice(db, logger),
		review:     models.NewReview(db, logger),
		photo:      models.NewPhoto(db, logger),
		moderation: models.NewModeration(db, logger),
		profile:    models.NewProfile(db, logger),
		report:     models.NewReport(db, logger),
		activity:   models.NewActivity(db, logger),
	}
}

// Pub returns the pub model repository.
func (r *Repository) Pub() *models.PubModel {
	return r.pub
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Price returns the price model repository.
func (r *Repository) Price() *models.PriceModel {
	return r.price
}

// Review returns the review model repository.
func (r *Repository) Review() *models.ReviewModel {
	return r.review
}

// Photo returns the photo model repository.
func (r *Repository) Photo() *models.PhotoModel {
	return r.photo
}

// Moderation returns the moderation model repository.
func (r *Repository) Moderation() *models.ModerationModel {
	return r.moderation
}

// Profile returns the profile model repository.
func (r *Repository) Profile() *models.ProfileModel {
	return r.profile
}

// Report returns the report model repository.
func (r *Repository) Report() *models.ReportModel {
	return r.report
}

// Activity returns the activity model repository.
func (r *Repository) Activity() *models.ActivityModel {
	return r.activity
}
