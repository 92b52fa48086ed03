package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimealert/beacon/internal/geo"
	"github.com/crimealert/beacon/internal/models"
)

// ZoneStore lists alert zones eligible for zone matching. Implemented by the
// repository; read-only.
type ZoneStore interface {
	ListAlertZones(ctx context.Context, excludeOwnerID int64) ([]models.ZoneOwner, error)
}

// ZoneMatcher finds users who own an alert zone covering the incident point.
type ZoneMatcher struct {
	store ZoneStore
	log   *slog.Logger
}

// NewZoneMatcher creates a new ZoneMatcher backed by the given store.
func NewZoneMatcher(store ZoneStore, log *slog.Logger) *ZoneMatcher {
	return &ZoneMatcher{store: store, log: log}
}

// Match returns one candidate per user owning at least one zone whose radius
// strictly covers the incident point. The contract is "users to notify", not
// "zones triggered": an owner with several qualifying zones appears once.
// Zones owned by excludeUserID never produce a candidate.
func (m *ZoneMatcher) Match(
	ctx context.Context,
	incident models.Coordinates,
	excludeUserID int64,
) ([]models.RecipientCandidate, error) {
	if err := geo.ValidateCoordinates(incident); err != nil {
		return nil, fmt.Errorf("invalid incident location: %w", err)
	}

	zones, err := m.store.ListAlertZones(ctx, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert zones: %w", err)
	}

	var candidates []models.RecipientCandidate
	seen := make(map[int64]bool)
	for _, zone := range zones {
		if zone.Owner.ID == excludeUserID || seen[zone.Owner.ID] {
			continue
		}

		if zone.Zone.RadiusKm <= 0 {
			m.log.WarnContext(ctx, "Skipping zone with non-positive radius",
				"zone_id", zone.Zone.ID, "radius_km", zone.Zone.RadiusKm)
			continue
		}
		if errCoords := geo.ValidateCoordinates(zone.Zone.Center()); errCoords != nil {
			m.log.WarnContext(ctx, "Skipping zone with invalid center",
				"zone_id", zone.Zone.ID, "error", errCoords)
			continue
		}

		if geo.Distance(zone.Zone.Center(), incident) < zone.Zone.RadiusKm {
			seen[zone.Owner.ID] = true
			candidates = append(candidates, models.RecipientCandidate{
				Email:     zone.Owner.Email,
				Username:  zone.Owner.Username,
				MatchedBy: models.MatchedByZone,
			})
		}
	}

	m.log.DebugContext(ctx, "Zone match finished", "checked", len(zones), "matched", len(candidates))

	return candidates, nil
}
