package models

// AlertZone is a user-defined circular region the owner wants to be alerted
// about. Owned by the zone-management subsystem; read-only here.
type AlertZone struct {
	ID        int64   // ID is the unique identifier of the zone.
	OwnerID   int64   // OwnerID is the user who created the zone.
	Name      string  // Name is the user-chosen label, e.g. "Home" or "Office".
	Latitude  float64 // Latitude of the zone center.
	Longitude float64 // Longitude of the zone center.
	RadiusKm  float64 // RadiusKm is the zone radius in kilometers.
}

// Center returns the zone's center point.
func (z AlertZone) Center() Coordinates {
	return Coordinates{Latitude: z.Latitude, Longitude: z.Longitude}
}

// ZoneOwner pairs an alert zone with the user who owns it, as returned by the
// location store's zone listing.
type ZoneOwner struct {
	Owner UserLocation // Owner is the user to notify when the zone triggers.
	Zone  AlertZone    // Zone is the zone configuration.
}
