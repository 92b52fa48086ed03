package models

// UserLocation represents a registered user together with the home coordinates
// from their profile. The profile subsystem owns these rows; this service only
// reads them. Users may register without sharing a location, in which case both
// coordinate fields are nil and the user is invisible to proximity matching.
type UserLocation struct {
	ID       int64    // ID is the unique identifier of the user.
	Email    string   // Email is the address alerts are delivered to.
	Username string   // Username is used to greet the user in the alert.
	HomeLat  *float64 // HomeLat is the latitude of the user's home, if shared.
	HomeLon  *float64 // HomeLon is the longitude of the user's home, if shared.
}

// HomeCoordinates returns the user's home point and whether one is set.
func (u UserLocation) HomeCoordinates() (Coordinates, bool) {
	if u.HomeLat == nil || u.HomeLon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *u.HomeLat, Longitude: *u.HomeLon}, true
}
