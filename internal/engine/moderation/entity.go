package moderation

import (
	"fmt"

	"github.com/pintwise/pintwise/internal/database/types/enum"
)

// Rules describe how moderation treats an entity type.
type Rules struct {
	// Gated entities pass through Gate on submission.
	Gated bool
	// Removable entities may be deleted when a report against them is resolved.
	Removable bool
}

// RulesFor returns the moderation rules for an entity type.
func RulesFor(entityType enum.EntityType) (Rules, error) {
	switch entityType {
	case enum.EntityTypeReview, enum.EntityTypePhoto:
		return Rules{Gated: true, Removable: true}, nil
	case enum.EntityTypePrice, enum.EntityTypeDeal:
		return Rules{Removable: true}, nil
	case enum.EntityTypePub, enum.EntityTypeAmenity:
		// Pubs are corrected by admins and amenities by further votes.
		return Rules{}, nil
	}

	return Rules{}, fmt.Errorf("unknown entity type %d", entityType)
}
