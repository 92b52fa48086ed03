package geocode

import (
	"context"

	"github.com/crimealert/beacon/internal/models"
)

// Provider is an interface that defines a method for reverse geocoding.
// ReverseGeocode takes a context and a point, and returns a human-readable
// address for it, used to enrich alert emails. Failures are expected and the
// caller treats the address as optional.
type Provider interface {
	ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error)
}
