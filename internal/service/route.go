package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/pathfinder"
	"github.com/UnknownOlympus/meridian/internal/repository"
)

const (
	defaultWorkers      = 4
	defaultSearchLimit  = 5
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ErrNoResults is returned when a query used as a marker has no geocoding candidate.
var ErrNoResults = errors.New("no places found")

// PathFinder computes paths between markers.
type PathFinder interface {
	FindPath(ctx context.Context, req pathfinder.Request) (*models.PathResult, error)
	Health(ctx context.Context) (*models.HealthStatus, error)
}

// Options tunes the route service.
type Options struct {
	Workers      int           // Number of concurrent workers resolving marker queries
	SearchLimit  int           // Maximum number of candidates per search
	CacheTTL     time.Duration // Maximum age of a geocode cache entry
	ProviderName string        // Name of the geocoding provider for metrics labeling
}

// RouteService coordinates geocoding, distance reporting and route planning
// for the map UI.
type RouteService struct {
	log      *slog.Logger         // Logger for logging service activities
	repo     repository.Interface // Geocode cache and route history
	provider geocoding.Provider   // Geocoding provider for external geocoding services
	finder   PathFinder           // Pathfinding backend
	metrics  *metrics.Metrics     // Metrics for tracking service performance
	opts     Options
}

// NewRouteService creates a new instance of RouteService. Zero options fall back to defaults.
func NewRouteService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	finder PathFinder,
	metrics *metrics.Metrics,
	opts Options,
) *RouteService {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}

	return &RouteService{
		log:      log,
		repo:     repo,
		provider: provider,
		finder:   finder,
		metrics:  metrics,
		opts:     opts,
	}
}

// BackendHealth reports the health of the pathfinding backend.
func (rs *RouteService) BackendHealth(ctx context.Context) (*models.HealthStatus, error) {
	return rs.finder.Health(ctx)
}

// History returns the most recent planned routes. Out-of-range limits are clamped.
func (rs *RouteService) History(ctx context.Context, limit int) ([]models.RouteRecord, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	return rs.repo.ListRoutes(ctx, limit)
}
