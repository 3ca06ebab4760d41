package models

import "time"

// PathResult is the validated answer of the pathfinding backend.
type PathResult struct {
	Path          []Coordinate // Ordered path from start to end.
	Distance      float64      // Total distance in meters.
	Duration      *float64     // Total duration in seconds, nil when the backend omitted it.
	NodesVisited  int          // Number of graph nodes the algorithm visited.
	ExecutionTime float64      // Backend execution time in milliseconds.
}

// Leg is the straight-line segment between two consecutive markers.
type Leg struct {
	From          Marker  `json:"from"`
	To            Marker  `json:"to"`
	Distance      float64 `json:"distance"`
	DistanceText  string  `json:"distance_text"`
	EstimatedText string  `json:"estimated_duration_text"`
}

// RouteSummary is a path result enriched with human-readable values for the map UI.
type RouteSummary struct {
	ID                int64        `json:"id,omitempty"`
	Algorithm         string       `json:"algorithm"`
	Heuristic         string       `json:"heuristic,omitempty"`
	Markers           []Marker     `json:"markers"`
	Path              []Coordinate `json:"path"`
	PathPoints        int          `json:"path_points"`
	Distance          float64      `json:"distance"`
	DistanceText      string       `json:"distance_text"`
	Duration          *float64     `json:"duration,omitempty"`
	DurationText      string       `json:"duration_text"`
	NodesVisited      int          `json:"nodes_visited"`
	ExecutionTime     float64      `json:"execution_time"`
	ExecutionTimeText string       `json:"execution_time_text"`
	PathLength        float64      `json:"path_length"`
	PathLengthText    string       `json:"path_length_text"`
	Legs              []Leg        `json:"legs"`
}

// RouteRecord is a persisted route history entry.
type RouteRecord struct {
	ID            int64      `json:"id"`
	Algorithm     string     `json:"algorithm"`
	Start         Coordinate `json:"start"`
	End           Coordinate `json:"end"`
	Waypoints     int        `json:"waypoints"`
	Distance      float64    `json:"distance"`
	Duration      *float64   `json:"duration,omitempty"`
	NodesVisited  int        `json:"nodes_visited"`
	ExecutionTime float64    `json:"execution_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HealthStatus is the health payload of the pathfinding backend.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DistanceReport is the straight-line distance between two coordinates.
type DistanceReport struct {
	From              Coordinate `json:"from"`
	To                Coordinate `json:"to"`
	Distance          float64    `json:"distance"`
	DistanceText      string     `json:"distance_text"`
	EstimatedDuration float64    `json:"estimated_duration"`
	DurationText      string     `json:"duration_text"`
}
