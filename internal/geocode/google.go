package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimealert/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to turn incident coordinates
// into a display address through the Google Maps reverse geocoding service.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// ReverseGeocode takes a context and a point as input, and returns the formatted
// address of the location using the Google Maps Geocoding API. If the point
// cannot be resolved or if the response is empty, it returns an appropriate error.
func (gp *GoogleProvider) ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "lat", point.Latitude, "lon", point.Longitude)

	req := maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: point.Latitude, Lng: point.Longitude},
	}
	results, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode point: %w", err)
	}

	if len(results) == 0 {
		return "", ErrEmptyResponse
	}

	return results[0].FormattedAddress, nil
}
