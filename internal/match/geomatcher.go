// Package match selects the recipients of an incident alert: users whose home
// lies within the discovery radius, users whose alert zones cover the incident,
// and the merge of the two into a single recipient set.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimealert/beacon/internal/geo"
	"github.com/crimealert/beacon/internal/models"
)

// UserStore lists users eligible for proximity matching. Implemented by the
// repository; read-only.
type UserStore interface {
	ListUsersWithHomeLocation(ctx context.Context, excludeUserID int64) ([]models.UserLocation, error)
}

// ErrNonPositiveRadius is returned when a matcher is called with a radius <= 0.
var ErrNonPositiveRadius = errors.New("radius must be positive")

// GeoMatcher finds users whose registered home coordinates lie within a fixed
// discovery radius of the incident.
type GeoMatcher struct {
	store UserStore
	log   *slog.Logger
}

// NewGeoMatcher creates a new GeoMatcher backed by the given store.
func NewGeoMatcher(store UserStore, log *slog.Logger) *GeoMatcher {
	return &GeoMatcher{store: store, log: log}
}

// Match returns one candidate per user whose home is strictly closer than
// radiusKm to the incident point. A user exactly on the boundary is excluded,
// and excludeUserID (the reporter) never appears in the result.
func (m *GeoMatcher) Match(
	ctx context.Context,
	incident models.Coordinates,
	radiusKm float64,
	excludeUserID int64,
) ([]models.RecipientCandidate, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveRadius, radiusKm)
	}
	if err := geo.ValidateCoordinates(incident); err != nil {
		return nil, fmt.Errorf("invalid incident location: %w", err)
	}

	users, err := m.store.ListUsersWithHomeLocation(ctx, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for proximity match: %w", err)
	}

	var candidates []models.RecipientCandidate
	for _, user := range users {
		if user.ID == excludeUserID {
			continue
		}

		home, ok := user.HomeCoordinates()
		if !ok {
			continue
		}
		if errCoords := geo.ValidateCoordinates(home); errCoords != nil {
			m.log.WarnContext(ctx, "Skipping user with invalid home coordinates",
				"user_id", user.ID, "error", errCoords)
			continue
		}

		if geo.Distance(home, incident) < radiusKm {
			candidates = append(candidates, models.RecipientCandidate{
				Email:     user.Email,
				Username:  user.Username,
				MatchedBy: models.MatchedByProximity,
			})
		}
	}

	m.log.DebugContext(ctx, "Proximity match finished",
		"checked", len(users), "matched", len(candidates), "radius_km", radiusKm)

	return candidates, nil
}
