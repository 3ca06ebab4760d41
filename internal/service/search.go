package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// Search returns geocoding candidates for query. A blank query yields no candidates.
// Cached candidates are served while fresh; cache failures only get logged.
func (rs *RouteService) Search(ctx context.Context, query string) ([]models.Place, error) {
	key := cacheKey(query)
	if key == "" {
		rs.metrics.SearchRequests.WithLabelValues("empty").Inc()
		return []models.Place{}, nil
	}

	cached, err := rs.repo.FetchCachedPlaces(ctx, key, rs.opts.CacheTTL)
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to read geocode cache", "query", key, "error", err)
	} else if len(cached) > 0 {
		rs.metrics.CacheHits.Inc()
		rs.metrics.SearchRequests.WithLabelValues("cache").Inc()
		return cached, nil
	}

	startTime := time.Now()
	places, err := rs.provider.Search(ctx, strings.TrimSpace(query), rs.opts.SearchLimit)
	rs.metrics.ProviderSeconds.WithLabelValues(rs.opts.ProviderName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		if geocoding.IsNoResults(err) {
			rs.metrics.SearchRequests.WithLabelValues("empty").Inc()
			return []models.Place{}, nil
		}
		rs.metrics.SearchRequests.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	if len(places) == 0 {
		rs.metrics.SearchRequests.WithLabelValues("empty").Inc()
		return []models.Place{}, nil
	}

	rs.metrics.SearchRequests.WithLabelValues("success").Inc()

	if err = rs.repo.StorePlaces(ctx, key, places); err != nil {
		rs.log.ErrorContext(ctx, "Failed to store places in geocode cache", "query", key, "error", err)
	}

	return places, nil
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

type resolveJob struct {
	idx   int
	query string
}

// ResolveMarkers geocodes every query to its best candidate using a worker pool.
// Markers keep the order of queries. All failures are reported together.
func (rs *RouteService) ResolveMarkers(ctx context.Context, queries []string) ([]models.Marker, error) {
	if len(queries) == 0 {
		return []models.Marker{}, nil
	}

	markers := make([]models.Marker, len(queries))
	errs := make([]error, len(queries))

	numWorkers := min(rs.opts.Workers, len(queries))
	rs.log.InfoContext(ctx, "Resolving markers", "jobs", len(queries), "num_workers", numWorkers)

	jobs := make(chan resolveJob, len(queries))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go rs.worker(ctx, i, &wgr, jobs, markers, errs)
	}

	for idx, query := range queries {
		jobs <- resolveJob{idx: idx, query: query}
	}
	close(jobs)

	wgr.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return markers, nil
}

// worker resolves jobs until the channel is closed. Each job writes only its own slot.
func (rs *RouteService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan resolveJob,
	markers []models.Marker,
	errs []error,
) {
	defer wg.Done()
	for job := range jobs {
		rs.metrics.ActiveWorkers.Inc()
		rs.log.DebugContext(ctx, "Resolving marker", "worker", idx, "query", job.query)

		places, err := rs.Search(ctx, job.query)
		switch {
		case err != nil:
			errs[job.idx] = fmt.Errorf("marker %d (%q): %w", job.idx, job.query, err)
		case len(places) == 0:
			errs[job.idx] = fmt.Errorf("marker %d (%q): %w", job.idx, job.query, ErrNoResults)
		default:
			markers[job.idx] = models.Marker{Coordinate: places[0].Coordinate, Label: places[0].DisplayName}
		}

		rs.metrics.ActiveWorkers.Dec()
	}
}
