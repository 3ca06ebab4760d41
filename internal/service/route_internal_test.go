package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/pathfinder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cacheTTL = 24 * time.Hour

var (
	monas      = models.Coordinate{Lat: -6.1751, Lng: 106.8650}
	bundaranHI = models.Coordinate{Lat: -6.1944, Lng: 106.8229}
	kotaTua    = models.Coordinate{Lat: -6.1352, Lng: 106.8133}
)

type fixture struct {
	service  *RouteService
	repo     *mockRepo
	provider *mockProvider
	finder   *mockFinder
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := new(mockRepo)
	provider := new(mockProvider)
	finder := new(mockFinder)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	svc := NewRouteService(logger, repo, provider, finder, appMetrics, Options{
		Workers:      2,
		SearchLimit:  3,
		CacheTTL:     cacheTTL,
		ProviderName: "nominatim",
	})

	t.Cleanup(func() {
		repo.AssertExpectations(t)
		provider.AssertExpectations(t)
		finder.AssertExpectations(t)
	})

	return fixture{service: svc, repo: repo, provider: provider, finder: finder, metrics: appMetrics}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	places := []models.Place{{PlaceID: "1", DisplayName: "Monumen Nasional", Coordinate: monas}}

	t.Run("blank query", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.service.Search(ctx, "   ")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cache hit skips the provider", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas jakarta", cacheTTL).Return(places, nil).Once()

		got, err := f.service.Search(ctx, "  Monas   Jakarta ")

		require.NoError(t, err)
		assert.Equal(t, places, got)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits), 1e-9)
	})

	t.Run("cache miss queries the provider and stores the result", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas jakarta", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "Monas Jakarta", 3).Return(places, nil).Once()
		f.repo.On("StorePlaces", ctx, "monas jakarta", places).Return(nil).Once()

		got, err := f.service.Search(ctx, "Monas Jakarta")

		require.NoError(t, err)
		assert.Equal(t, places, got)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.SearchRequests.WithLabelValues("success")), 1e-9)
	})

	t.Run("cache failures are not fatal", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas", cacheTTL).Return(nil, assert.AnError).Once()
		f.provider.On("Search", ctx, "Monas", 3).Return(places, nil).Once()
		f.repo.On("StorePlaces", ctx, "monas", places).Return(assert.AnError).Once()

		got, err := f.service.Search(ctx, "Monas")

		require.NoError(t, err)
		assert.Equal(t, places, got)
	})

	t.Run("no candidates", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "nowhere", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "nowhere", 3).Return(nil, geocoding.ErrNominatimEmptyResponse).Once()

		got, err := f.service.Search(ctx, "nowhere")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "monas", 3).Return(nil, assert.AnError).Once()

		got, err := f.service.Search(ctx, "monas")

		require.Nil(t, got)
		require.ErrorIs(t, err, assert.AnError)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.SearchRequests.WithLabelValues("failure")), 1e-9)
	})
}

func TestResolveMarkers(t *testing.T) {
	ctx := context.Background()

	t.Run("order is preserved", func(t *testing.T) {
		f := newFixture(t)
		queries := []string{"monas", "kota tua", "bundaran hi"}
		coords := []models.Coordinate{monas, kotaTua, bundaranHI}

		for i, q := range queries {
			places := []models.Place{{DisplayName: q + " place", Coordinate: coords[i]}}
			f.repo.On("FetchCachedPlaces", ctx, q, cacheTTL).Return(places, nil).Once()
		}

		markers, err := f.service.ResolveMarkers(ctx, queries)

		require.NoError(t, err)
		require.Len(t, markers, 3)
		for i := range queries {
			assert.Equal(t, coords[i], markers[i].Coordinate)
			assert.Equal(t, queries[i]+" place", markers[i].Label)
		}
		assert.Zero(t, testutil.ToFloat64(f.metrics.ActiveWorkers))
	})

	t.Run("failures are joined", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas", cacheTTL).
			Return([]models.Place{{Coordinate: monas}}, nil).Once()
		f.repo.On("FetchCachedPlaces", ctx, "atlantis", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "atlantis", 3).Return(nil, geocoding.ErrNominatimEmptyResponse).Once()
		f.repo.On("FetchCachedPlaces", ctx, "broken", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "broken", 3).Return(nil, assert.AnError).Once()

		markers, err := f.service.ResolveMarkers(ctx, []string{"monas", "atlantis", "broken"})

		require.Nil(t, markers)
		require.ErrorIs(t, err, ErrNoResults)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), `marker 1 ("atlantis")`)
		assert.Contains(t, err.Error(), `marker 2 ("broken")`)
	})

	t.Run("no queries", func(t *testing.T) {
		f := newFixture(t)

		markers, err := f.service.ResolveMarkers(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, markers)
	})
}

func TestDistance(t *testing.T) {
	f := newFixture(t)

	t.Run("monas to bundaran hi", func(t *testing.T) {
		report, err := f.service.Distance(monas, bundaranHI)

		require.NoError(t, err)
		assert.InDelta(t, 5100, report.Distance, 50)
		assert.Equal(t, "5.13 km", report.DistanceText)
		assert.Equal(t, "10 min 15 sec", report.DurationText)
		assert.InDelta(t, geometrics.EstimateDuration(report.Distance), report.EstimatedDuration, 1e-9)
	})

	t.Run("same point", func(t *testing.T) {
		report, err := f.service.Distance(monas, monas)

		require.NoError(t, err)
		assert.Zero(t, report.Distance)
		assert.Equal(t, "0 m", report.DistanceText)
		assert.Equal(t, "0 seconds", report.DurationText)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		_, err := f.service.Distance(monas, models.Coordinate{Lat: 95, Lng: 0})

		require.ErrorIs(t, err, geometrics.ErrInvalidCoordinate)
		assert.Contains(t, err.Error(), "to:")
	})
}

func TestPlanRoute(t *testing.T) {
	ctx := context.Background()
	markers := []models.Marker{
		{Coordinate: monas, Label: "Start"},
		{Coordinate: kotaTua, Label: "Waypoint"},
		{Coordinate: bundaranHI, Label: "End"},
	}
	expectedReq := pathfinder.Request{
		Start:     monas,
		End:       bundaranHI,
		Algorithm: pathfinder.AlgorithmAStar,
		Waypoints: []models.Coordinate{kotaTua},
		Heuristic: pathfinder.HeuristicManhattan,
	}

	t.Run("summary with absent duration", func(t *testing.T) {
		f := newFixture(t)
		result := &models.PathResult{
			Path:          []models.Coordinate{monas, kotaTua, bundaranHI},
			Distance:      12500,
			NodesVisited:  3,
			ExecutionTime: 1.23456,
		}
		f.finder.On("FindPath", ctx, expectedReq).Return(result, nil).Once()
		f.repo.On("SaveRoute", ctx, mock.MatchedBy(func(r models.RouteRecord) bool {
			return r.Algorithm == "astar" && r.Waypoints == 1 && r.Duration == nil && r.Start == monas
		})).Return(int64(7), nil).Once()

		summary, err := f.service.PlanRoute(ctx, RouteInput{
			Markers: markers, Algorithm: "astar", Heuristic: "manhattan",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), summary.ID)
		assert.Equal(t, "astar", summary.Algorithm)
		assert.Equal(t, "manhattan", summary.Heuristic)
		assert.Equal(t, "12.50 km", summary.DistanceText)
		assert.Equal(t, geometrics.NotAvailable, summary.DurationText)
		assert.Equal(t, "1.235 ms", summary.ExecutionTimeText)
		assert.Equal(t, 3, summary.PathPoints)
		assert.InDelta(t, geometrics.PathLength(result.Path), summary.PathLength, 1e-9)
		require.Len(t, summary.Legs, 2)
		assert.Equal(t, "Start", summary.Legs[0].From.Label)
		assert.Equal(t, "End", summary.Legs[1].To.Label)
		assert.InDelta(t, geometrics.ComputeDistance(kotaTua, bundaranHI), summary.Legs[1].Distance, 1e-9)
		assert.InDelta(t, 1.0,
			testutil.ToFloat64(f.metrics.PathRequests.WithLabelValues("astar", "success")), 1e-9)
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		f := newFixture(t)
		duration := 3725.0
		req := pathfinder.Request{Start: monas, End: bundaranHI, Algorithm: pathfinder.AlgorithmDijkstra}
		f.finder.On("FindPath", ctx, req).
			Return(&models.PathResult{Path: []models.Coordinate{monas, bundaranHI}, Distance: 999, Duration: &duration}, nil).
			Once()
		f.repo.On("SaveRoute", ctx, mock.Anything).Return(int64(0), assert.AnError).Once()

		summary, err := f.service.PlanRoute(ctx, RouteInput{Markers: []models.Marker{markers[0], markers[2]}})

		require.NoError(t, err)
		assert.Zero(t, summary.ID)
		assert.Equal(t, "999 m", summary.DistanceText)
		assert.Equal(t, "1 hr 2 min", summary.DurationText)
		assert.Empty(t, summary.Heuristic)
	})

	t.Run("queries are resolved into markers", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "monas", cacheTTL).
			Return([]models.Place{{DisplayName: "Monumen Nasional", Coordinate: monas}}, nil).Once()
		f.repo.On("FetchCachedPlaces", ctx, "bundaran hi", cacheTTL).
			Return([]models.Place{{DisplayName: "Bundaran HI", Coordinate: bundaranHI}}, nil).Once()
		req := pathfinder.Request{Start: monas, End: bundaranHI, Algorithm: pathfinder.AlgorithmCustom}
		f.finder.On("FindPath", ctx, req).Return(&models.PathResult{}, nil).Once()
		f.repo.On("SaveRoute", ctx, mock.Anything).Return(int64(1), nil).Once()

		summary, err := f.service.PlanRoute(ctx, RouteInput{
			Queries: []string{"monas", "bundaran hi"}, Algorithm: "custom",
		})

		require.NoError(t, err)
		require.Len(t, summary.Markers, 2)
		assert.Equal(t, "Monumen Nasional", summary.Markers[0].Label)
		assert.Equal(t, "0 m", summary.PathLengthText)
	})

	t.Run("backend finds no path", func(t *testing.T) {
		f := newFixture(t)
		notFound := &pathfinder.StatusError{Code: 404, Detail: "no path"}
		f.finder.On("FindPath", ctx, expectedReq).Return(nil, notFound).Once()

		summary, err := f.service.PlanRoute(ctx, RouteInput{
			Markers: markers, Algorithm: "astar", Heuristic: "manhattan",
		})

		require.Nil(t, summary)
		require.ErrorIs(t, err, pathfinder.ErrPathNotFound)
		assert.InDelta(t, 1.0,
			testutil.ToFloat64(f.metrics.PathRequests.WithLabelValues("astar", "failure")), 1e-9)
	})

	t.Run("invalid input never reaches the backend", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.PlanRoute(ctx, RouteInput{Markers: markers[:1]})
		require.ErrorIs(t, err, pathfinder.ErrNotEnoughMarkers)

		_, err = f.service.PlanRoute(ctx, RouteInput{Markers: markers, Algorithm: "bfs"})
		require.ErrorIs(t, err, pathfinder.ErrUnsupportedAlgorithm)
	})

	t.Run("unresolvable query", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchCachedPlaces", ctx, "atlantis", cacheTTL).Return(nil, nil).Once()
		f.provider.On("Search", ctx, "atlantis", 3).Return([]models.Place{}, nil).Once()

		_, err := f.service.PlanRoute(ctx, RouteInput{Queries: []string{"atlantis"}})

		require.True(t, errors.Is(err, ErrNoResults))
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	records := []models.RouteRecord{{ID: 1, Algorithm: "dijkstra"}}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default", limit: 0, want: defaultHistoryLimit},
		{name: "clamped", limit: 500, want: maxHistoryLimit},
		{name: "as requested", limit: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.On("ListRoutes", ctx, tt.want).Return(records, nil).Once()

			got, err := f.service.History(ctx, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, records, got)
		})
	}
}

func TestBackendHealth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.finder.On("Health", ctx).Return(&models.HealthStatus{Status: "healthy"}, nil).Once()

	status, err := f.service.BackendHealth(ctx)

	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
}
