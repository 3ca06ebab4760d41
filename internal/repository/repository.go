package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Repository persists the geocode cache and the route history in PostgreSQL.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the persistence surface used by the route service.
type Interface interface {
	FetchCachedPlaces(ctx context.Context, query string, maxAge time.Duration) ([]models.Place, error)
	StorePlaces(ctx context.Context, query string, places []models.Place) error
	SaveRoute(ctx context.Context, record models.RouteRecord) (int64, error)
	ListRoutes(ctx context.Context, limit int) ([]models.RouteRecord, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
