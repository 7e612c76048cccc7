package convert

import (
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/engine/confidence"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
)

// Confidence converts a confidence classification.
func Confidence(result confidence.Result) restTypes.Confidence {
	return restTypes.Confidence{
		Level:          result.Level.String(),
		RecentAccurate: result.RecentAccurate,
		LastVerifiedAt: result.LastVerifiedAt,
	}
}

// PriceView converts a price with its derived state.
func PriceView(view *service.PriceView) restTypes.Price {
	price := view.Price
	result := restTypes.Price{
		ID:                price.ID,
		PubID:             price.PubID,
		Targeting:         price.TargetingKind.String(),
		DrinkIDs:          price.DrinkIDs,
		FoodItem:          price.FoodItem,
		Amount:            price.Amount,
		IsDeal:            price.IsDeal,
		SubmittedBy:       price.SubmittedBy,
		Upvotes:           price.Upvotes,
		Downvotes:         price.Downvotes,
		VerificationCount: price.VerificationCount,
		Confidence:        Confidence(view.Confidence),
		CreatedAt:         price.CreatedAt,
		UpdatedAt:         price.UpdatedAt,
	}
	if price.IsDeal {
		result.Deal = &restTypes.Deal{
			DealType:    price.DealType.String(),
			Description: price.Description,
			StartDate:   price.DealStartDate,
			EndDate:     price.DealEndDate,
			Status:      view.DealStatus.String(),
			StartsLater: view.StartsLater,
		}
	}
	return result
}

// PriceViews converts the prices of a pub.
func PriceViews(views []*service.PriceView) []restTypes.Price {
	result := make([]restTypes.Price, len(views))
	for i, view := range views {
		result[i] = PriceView(view)
	}
	return result
}

// PriceConfidence converts a price confidence with its corrections.
func PriceConfidence(pc *service.PriceConfidence) restTypes.PriceConfidence {
	corrections := make([]restTypes.Correction, len(pc.Corrections))
	for i, c := range pc.Corrections {
		corrections[i] = restTypes.Correction{Amount: c.Amount, Supporters: c.Supporters}
	}

	return restTypes.PriceConfidence{
		PriceID:        pc.PriceID,
		Confidence:     Confidence(pc.Result),
		Corrections:    corrections,
		ProposedAmount: pc.ProposedAmount,
	}
}
