package repository

import (
	"context"
	"log/slog"

	"github.com/crimealert/beacon/internal/models"
	"github.com/jackc/pgx/v5"
)

// Database is the read-side subset of pgxpool.Pool the repository needs.
// Declared as an interface so tests can substitute pgxmock.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	ListUsersWithHomeLocation(ctx context.Context, excludeUserID int64) ([]models.UserLocation, error)
	ListAlertZones(ctx context.Context, excludeOwnerID int64) ([]models.ZoneOwner, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
