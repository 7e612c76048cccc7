package convert

import (
	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
)

// Ratings converts review ratings.
func Ratings(r types.Ratings) restTypes.Ratings {
	return restTypes.Ratings{
		Atmosphere:   r.Atmosphere,
		Service:      r.Service,
		Value:        r.Value,
		DrinkQuality: r.DrinkQuality,
		FoodQuality:  r.FoodQuality,
		Cleanliness:  r.Cleanliness,
	}
}

// ToRatings converts request ratings to database ratings.
func ToRatings(r restTypes.Ratings) types.Ratings {
	return types.Ratings{
		Atmosphere:   r.Atmosphere,
		Service:      r.Service,
		Value:        r.Value,
		DrinkQuality: r.DrinkQuality,
		FoodQuality:  r.FoodQuality,
		Cleanliness:  r.Cleanliness,
	}
}

// Review converts a database review.
func Review(review *types.Review) *restTypes.Review {
	if review == nil {
		return nil
	}

	return &restTypes.Review{
		ID:        review.ID,
		PubID:     review.PubID,
		UserID:    review.UserID,
		Comment:   review.Comment,
		Ratings:   Ratings(review.Ratings),
		Status:    review.Status().String(),
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// Reviews converts a list of reviews.
func Reviews(reviews []*types.Review) []restTypes.Review {
	result := make([]restTypes.Review, len(reviews))
	for i, review := range reviews {
		result[i] = *Review(review)
	}
	return result
}

// Photo converts a database photo.
func Photo(photo *types.Photo) *restTypes.Photo {
	if photo == nil {
		return nil
	}

	return &restTypes.Photo{
		ID:         photo.ID,
		PubID:      photo.PubID,
		UserID:     photo.UserID,
		StorageKey: photo.StorageKey,
		Caption:    photo.Caption,
		Status:     photo.Status().String(),
		CreatedAt:  photo.CreatedAt,
	}
}

// Photos converts a list of photos.
func Photos(photos []*types.Photo) []restTypes.Photo {
	result := make([]restTypes.Photo, len(photos))
	for i, photo := range photos {
		result[i] = *Photo(photo)
	}
	return result
}

// PendingItems converts the moderation queue.
func PendingItems(items []*types.PendingItem) []restTypes.PendingItem {
	result := make([]restTypes.PendingItem, len(items))
	for i, item := range items {
		result[i] = restTypes.PendingItem{
			EntityType: item.EntityType.String(),
			ID:         item.ID,
			PubID:      item.PubID,
			UserID:     item.UserID,
			CreatedAt:  item.CreatedAt,
			Review:     Review(item.Review),
			Photo:      Photo(item.Photo),
		}
	}
	return result
}

// Report converts a database report. The reporter fingerprint is never exposed.
func Report(report *types.Report) restTypes.Report {
	return restTypes.Report{
		ID:         report.ID,
		EntityType: report.EntityType.String(),
		EntityID:   report.EntityID,
		ReporterID: optionalUser(report.ReporterID),
		ReportType: report.ReportType.String(),
		Details:    report.Details,
		Status:     report.Status.String(),
		ReviewedBy: optionalUser(report.ReviewedBy),
		ReviewedAt: report.ReviewedAt,
		CreatedAt:  report.CreatedAt,
	}
}

// Reports converts a page of reports.
func Reports(reports []*types.Report) []restTypes.Report {
	result := make([]restTypes.Report, len(reports))
	for i, report := range reports {
		result[i] = Report(report)
	}
	return result
}

func optionalUser(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
