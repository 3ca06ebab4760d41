// Package pathfinder is a typed client for the pathfinding backend that computes
// shortest paths between map markers.
package pathfinder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// Algorithm names a shortest-path algorithm supported by the backend.
type Algorithm string

const (
	AlgorithmDijkstra Algorithm = "dijkstra"
	AlgorithmAStar    Algorithm = "astar"
	AlgorithmCustom   Algorithm = "custom"
)

// Heuristic names an A* distance heuristic.
type Heuristic string

const (
	HeuristicEuclidean Heuristic = "euclidean"
	HeuristicManhattan Heuristic = "manhattan"
)

var (
	ErrNotEnoughMarkers     = errors.New("at least two markers are required")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrUnsupportedHeuristic = errors.New("unsupported heuristic")
)

// Request is the body of POST /api/path.
type Request struct {
	Start     models.Coordinate   `json:"start"`
	End       models.Coordinate   `json:"end"`
	Algorithm Algorithm           `json:"algorithm"`
	Waypoints []models.Coordinate `json:"waypoints,omitempty"`
	Heuristic Heuristic           `json:"heuristic,omitempty"`
}

// ParseAlgorithm normalizes name. An empty name selects Dijkstra.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch algo := Algorithm(strings.ToLower(strings.TrimSpace(name))); algo {
	case "":
		return AlgorithmDijkstra, nil
	case AlgorithmDijkstra, AlgorithmAStar, AlgorithmCustom:
		return algo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// ParseHeuristic normalizes name. An empty name selects the euclidean heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch h := Heuristic(strings.ToLower(strings.TrimSpace(name))); h {
	case "":
		return HeuristicEuclidean, nil
	case HeuristicEuclidean, HeuristicManhattan:
		return h, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHeuristic, name)
	}
}

// BuildRequest turns an ordered list of markers into a path request.
// The first marker is the start, the last the end, and everything in between
// a waypoint. The heuristic is only sent for A*.
func BuildRequest(markers []models.Marker, algorithm, heuristic string) (Request, error) {
	if len(markers) < 2 {
		return Request{}, fmt.Errorf("%w: got %d", ErrNotEnoughMarkers, len(markers))
	}

	for idx, marker := range markers {
		if err := geometrics.Validate(marker.Coordinate); err != nil {
			return Request{}, fmt.Errorf("marker %d: %w", idx, err)
		}
	}

	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Start:     markers[0].Coordinate,
		End:       markers[len(markers)-1].Coordinate,
		Algorithm: algo,
	}

	for _, marker := range markers[1 : len(markers)-1] {
		req.Waypoints = append(req.Waypoints, marker.Coordinate)
	}

	if algo == AlgorithmAStar {
		if req.Heuristic, err = ParseHeuristic(heuristic); err != nil {
			return Request{}, err
		}
	}

	return req, nil
}
