package enum

// Amenity is a boolean pub attribute decided by community consensus.
//
//go:generate go tool enumer -type=Amenity -trimprefix=Amenity -transform=snake
type Amenity int

const (
	AmenityBeerGarden Amenity = iota
	AmenityLiveSport
	AmenityDogFriendly
	AmenityServesFood
	AmenityWifi
	AmenityStepFreeAccess
	AmenityPoolTable
	AmenityLiveMusic
	AmenityQuizNight
	AmenityRealAle
)
