package convert

import (
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
)

// Pub converts a database pub to REST API pub.
func Pub(pub *types.Pub) restTypes.Pub {
	return restTypes.Pub{
		ID:                pub.ID,
		Name:              pub.Name,
		Address:           pub.Address,
		TimeZone:          pub.TimeZone,
		PermanentlyClosed: pub.PermanentlyClosed,
		CreatedAt:         pub.CreatedAt,
	}
}

// Pubs converts a page of database pubs.
func Pubs(pubs []*types.Pub) []restTypes.Pub {
	result := make([]restTypes.Pub, len(pubs))
	for i, pub := range pubs {
		result[i] = Pub(pub)
	}
	return result
}

// PubStatus converts a resolved opening state.
func PubStatus(status *service.PubStatus) restTypes.PubStatus {
	return restTypes.PubStatus{
		PubID:        status.PubID,
		State:        status.State.String(),
		IsOpen:       status.State.IsOpen(),
		Detail:       status.Detail,
		MinutesUntil: status.MinutesUntil,
		LocalTime:    status.LocalTime,
	}
}

// Amenities converts amenity views.
func Amenities(views []*service.AmenityView) []restTypes.Amenity {
	result := make([]restTypes.Amenity, len(views))
	for i, view := range views {
		result[i] = restTypes.Amenity{
			Key:   view.Amenity.String(),
			Value: view.Value,
			Yes:   view.Claim.Yes,
			No:    view.Claim.No,
		}
	}
	return result
}
