package repository

import (
	"context"
	"fmt"

	"github.com/crimealert/beacon/internal/models"
)

// ListUsersWithHomeLocation retrieves every user who shared home coordinates,
// excluding the given user. The distance filter itself is applied by the
// caller; this query only narrows the set to rows that can match at all.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - excludeUserID: The user to leave out, typically the reporter.
//
// Returns:
// - A slice of models.UserLocation with non-null coordinates.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) ListUsersWithHomeLocation(
	ctx context.Context,
	excludeUserID int64,
) ([]models.UserLocation, error) {
	var users []models.UserLocation
	query := `
		SELECT id, email, username, latitude, longitude
		FROM users
		WHERE
			id != $1
			AND latitude IS NOT NULL
			AND longitude IS NOT NULL;
	`

	rows, err := r.db.Query(ctx, query, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users with home location: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.UserLocation
		if errScan := rows.Scan(&user.ID, &user.Email, &user.Username, &user.HomeLat, &user.HomeLon); errScan != nil {
			return nil, fmt.Errorf("failed to scan user with home location: %w", errScan)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched users with home coordinates", "count", len(users))

	return users, nil
}

// ListAlertZones retrieves every alert zone together with its owner, excluding
// zones owned by the given user.
func (r *Repository) ListAlertZones(ctx context.Context, excludeOwnerID int64) ([]models.ZoneOwner, error) {
	var zones []models.ZoneOwner
	query := `
		SELECT u.id, u.email, u.username, az.id, az.zone_name, az.latitude, az.longitude, az.radius_km
		FROM alert_zones az
		JOIN users u ON az.user_id = u.id
		WHERE az.user_id != $1;
	`

	rows, err := r.db.Query(ctx, query, excludeOwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert zones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var zone models.ZoneOwner
		if errScan := rows.Scan(
			&zone.Owner.ID, &zone.Owner.Email, &zone.Owner.Username,
			&zone.Zone.ID, &zone.Zone.Name, &zone.Zone.Latitude, &zone.Zone.Longitude, &zone.Zone.RadiusKm,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan alert zone: %w", errScan)
		}
		zone.Zone.OwnerID = zone.Owner.ID
		zones = append(zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched alert zones", "count", len(zones))

	return zones, nil
}
