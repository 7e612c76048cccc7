// Package deal normalizes price and deal submissions into a canonical drink targeting and
// derives whether a deal is still live.
package deal

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxFoodItemLength bounds the food item description.
	MaxFoodItemLength = 120
	// MaxDrinks bounds the drinks a single deal may list.
	MaxDrinks = 50
	// MaxAmount is the largest accepted price in minor units.
	MaxAmount = 100_000
)

// Targeting is the canonical drink targeting of a price record.
// DrinkIDs is only populated for the single and multi choice kinds.
type Targeting struct {
	Kind     enum.TargetingKind
	DrinkIDs []int64
}

// Single targets one drink. Regular prices always use it.
func Single(drinkID int64) Targeting {
	return Targeting{Kind: enum.TargetingKindSingle, DrinkIDs: []int64{drinkID}}
}

// Submission is a deal as entered by a user.
type Submission struct {
	DealType    enum.DealType
	Target      enum.DealTarget
	DrinkIDs    []int64
	FoodItem    string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Normalized is a validated deal ready to be stored.
type Normalized struct {
	Targeting   Targeting
	FoodItem    string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Normalize validates a submission and converts it to canonical form. Nothing should be
// stored when it returns an error.
func Normalize(s Submission) (Normalized, error) {
	if !s.DealType.IsADealType() {
		return Normalized{}, engine.Invalid("deal_type", "unknown deal type")
	}

	foodItem := CleanText(s.FoodItem)
	if s.DealType.RequiresFood() && foodItem == "" {
		return Normalized{}, engine.Invalid("food_item", "required for "+s.DealType.String()+" deals")
	}
	if utf8.RuneCountInString(foodItem) > MaxFoodItemLength {
		return Normalized{}, engine.Invalid("food_item", fmt.Sprintf("must be at most %d characters", MaxFoodItemLength))
	}

	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return Normalized{}, engine.Invalid("end_date", "must not be before the start date")
	}

	targeting, err := normalizeTargeting(s)
	if err != nil {
		return Normalized{}, err
	}

	return Normalized{
		Targeting:   targeting,
		FoodItem:    foodItem,
		Description: CleanText(s.Description),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
	}, nil
}

func normalizeTargeting(s Submission) (Targeting, error) {
	if s.DealType == enum.DealTypeFoodOnly {
		return Targeting{Kind: enum.TargetingKindNone}, nil
	}

	switch s.Target {
	case enum.DealTargetAllPints:
		return Targeting{Kind: enum.TargetingKindAllPints}, nil
	case enum.DealTargetAllDrinks:
		return Targeting{Kind: enum.TargetingKindAllDrinks}, nil
	case enum.DealTargetSpecific:
		ids := DrinkIDs(s.DrinkIDs)
		switch {
		case len(ids) == 0:
			return Targeting{}, engine.Invalid("drink_ids", "at least one drink is required")
		case len(ids) > MaxDrinks:
			return Targeting{}, engine.Invalid("drink_ids", fmt.Sprintf("at most %d drinks are allowed", MaxDrinks))
		case len(ids) == 1:
			return Single(ids[0]), nil
		default:
			return Targeting{Kind: enum.TargetingKindMultiChoice, DrinkIDs: ids}, nil
		}
	}

	return Targeting{}, engine.Invalid("target", "unknown deal target")
}

// DrinkIDs drops non-positive ids and returns the remaining ids sorted without duplicates.
func DrinkIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CleanText normalizes user-entered text to NFC and collapses whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ValidateAmount checks a price in minor units.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return engine.Invalid("amount", "must be positive")
	}
	if amount > MaxAmount {
		return engine.Invalid("amount", fmt.Sprintf("must be at most %d", MaxAmount))
	}
	return nil
}

// Status derives whether a deal is live. A deal without an end date never expires on its own.
func Status(endDate *time.Time, now time.Time) enum.DealStatus {
	if endDate != nil && endDate.Before(now) {
		return enum.DealStatusExpired
	}
	return enum.DealStatusActive
}

// StartsLater reports whether a deal has not started yet. It is informational only and
// does not affect Status.
func StartsLater(startDate *time.Time, now time.Time) bool {
	return startDate != nil && startDate.After(now)
}
