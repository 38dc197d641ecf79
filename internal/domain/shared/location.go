package shared

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean earth radius used for Haversine distances
const earthRadiusKm = 6371.0

// Location represents an immutable geographic location.
// Coordinates (0,0) are reserved as "unknown": distance computations treat
// them as absent rather than as a point in the Gulf of Guinea.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
}

// NewLocation creates a new location value
func NewLocation(latitude, longitude float64, address, city, region string) Location {
	return Location{
		Latitude:  latitude,
		Longitude: longitude,
		Address:   address,
		City:      city,
		Region:    region,
	}
}

// UnknownLocation returns a location with no usable coordinates
func UnknownLocation() Location {
	return Location{}
}

// HasCoordinates reports whether the location carries real coordinates
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// DistanceTo computes the Haversine distance in kilometers to another
// location. The second return value is false when either side has unknown
// coordinates and no distance can be computed.
func (l Location) DistanceTo(other Location) (float64, bool) {
	if !l.HasCoordinates() || !other.HasCoordinates() {
		return 0, false
	}

	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180
	dLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, true
}

// Equals compares latitude, longitude and address. Two locations equal under
// this relation are interchangeable for match scoring.
func (l Location) Equals(other Location) bool {
	return l.Latitude == other.Latitude &&
		l.Longitude == other.Longitude &&
		l.Address == other.Address
}

func (l Location) String() string {
	if !l.HasCoordinates() {
		return fmt.Sprintf("Location(unknown, %s)", l.City)
	}
	return fmt.Sprintf("Location(%.4f, %.4f, %s)", l.Latitude, l.Longitude, l.City)
}
