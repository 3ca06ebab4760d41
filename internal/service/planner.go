package service

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/pathfinder"
)

// RouteInput describes a route to plan. Queries are geocoded into markers
// when no markers are given.
type RouteInput struct {
	Markers   []models.Marker
	Queries   []string
	Algorithm string
	Heuristic string
}

// Distance reports the straight-line distance between two valid coordinates.
func (rs *RouteService) Distance(from, to models.Coordinate) (models.DistanceReport, error) {
	if err := geometrics.Validate(from); err != nil {
		return models.DistanceReport{}, fmt.Errorf("from: %w", err)
	}
	if err := geometrics.Validate(to); err != nil {
		return models.DistanceReport{}, fmt.Errorf("to: %w", err)
	}

	meters := geometrics.ComputeDistance(from, to)
	seconds := geometrics.EstimateDuration(meters)

	return models.DistanceReport{
		From:              from,
		To:                to,
		Distance:          meters,
		DistanceText:      geometrics.FormatDistance(meters),
		EstimatedDuration: seconds,
		DurationText:      geometrics.FormatDuration(seconds),
	}, nil
}

// PlanRoute asks the backend for a path through the markers and formats the
// answer for display. The route is recorded in the history; a failure to
// record it does not fail the request.
func (rs *RouteService) PlanRoute(ctx context.Context, input RouteInput) (*models.RouteSummary, error) {
	markers := input.Markers
	if len(markers) == 0 && len(input.Queries) > 0 {
		resolved, err := rs.ResolveMarkers(ctx, input.Queries)
		if err != nil {
			return nil, err
		}
		markers = resolved
	}

	req, err := pathfinder.BuildRequest(markers, input.Algorithm, input.Heuristic)
	if err != nil {
		return nil, err
	}

	algorithm := string(req.Algorithm)
	startTime := time.Now()
	result, err := rs.finder.FindPath(ctx, req)
	rs.metrics.PathSeconds.WithLabelValues(algorithm).Observe(time.Since(startTime).Seconds())

	if err != nil {
		rs.metrics.PathRequests.WithLabelValues(algorithm, "failure").Inc()
		rs.log.ErrorContext(ctx, "Failed to find path", "algorithm", algorithm, "error", err)
		return nil, fmt.Errorf("failed to find path: %w", err)
	}
	rs.metrics.PathRequests.WithLabelValues(algorithm, "success").Inc()

	summary := summarize(markers, req, result)

	id, err := rs.repo.SaveRoute(ctx, models.RouteRecord{
		Algorithm:     algorithm,
		Start:         req.Start,
		End:           req.End,
		Waypoints:     len(req.Waypoints),
		Distance:      result.Distance,
		Duration:      result.Duration,
		NodesVisited:  result.NodesVisited,
		ExecutionTime: result.ExecutionTime,
	})
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to save route history", "error", err)
	} else {
		summary.ID = id
	}

	rs.log.InfoContext(ctx, "Route planned",
		"algorithm", algorithm,
		"markers", len(markers),
		"distance", summary.DistanceText,
		"nodes_visited", result.NodesVisited)

	return summary, nil
}

func summarize(markers []models.Marker, req pathfinder.Request, result *models.PathResult) *models.RouteSummary {
	durationText := geometrics.NotAvailable
	if result.Duration != nil {
		durationText = geometrics.FormatDuration(*result.Duration)
	}

	pathLength := geometrics.PathLength(result.Path)

	return &models.RouteSummary{
		Algorithm:         string(req.Algorithm),
		Heuristic:         string(req.Heuristic),
		Markers:           markers,
		Path:              result.Path,
		PathPoints:        len(result.Path),
		Distance:          result.Distance,
		DistanceText:      geometrics.FormatDistance(result.Distance),
		Duration:          result.Duration,
		DurationText:      durationText,
		NodesVisited:      result.NodesVisited,
		ExecutionTime:     result.ExecutionTime,
		ExecutionTimeText: geometrics.FormatExecutionTime(result.ExecutionTime),
		PathLength:        pathLength,
		PathLengthText:    geometrics.FormatDistance(pathLength),
		Legs:              legs(markers),
	}
}

// legs returns the straight-line segments between consecutive markers.
func legs(markers []models.Marker) []models.Leg {
	out := make([]models.Leg, 0, max(len(markers)-1, 0))
	for i := 1; i < len(markers); i++ {
		meters := geometrics.ComputeDistance(markers[i-1].Coordinate, markers[i].Coordinate)
		out = append(out, models.Leg{
			From:          markers[i-1],
			To:            markers[i],
			Distance:      meters,
			DistanceText:  geometrics.FormatDistance(meters),
			EstimatedText: geometrics.FormatDuration(geometrics.EstimateDuration(meters)),
		})
	}
	return out
}
