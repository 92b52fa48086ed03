// Package geo provides the great-circle distance computation and coordinate
// validation shared by the matchers.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/crimealert/beacon/internal/models"
)

// earthRadiusKm is the mean Earth radius. The value matches the constant the
// matching queries have always used, so distances stay comparable.
const earthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("coordinate out of valid range")

// Distance returns the haversine distance in kilometers between two points.
func Distance(a, b models.Coordinates) float64 {
	latA := radians(a.Latitude)
	latB := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ValidateCoordinates checks that the point lies within latitude [-90, 90] and
// longitude [-180, 180].
func ValidateCoordinates(c models.Coordinates) error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Longitude)
	}

	return nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
