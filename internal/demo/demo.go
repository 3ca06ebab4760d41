// Package demo provides well-known Jakarta landmarks for trying out the map.
package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Location is a named landmark.
type Location struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Coordinate  models.Coordinate `json:"coordinate"`
}

// AlgorithmInfo describes a pathfinding algorithm offered by the backend.
type AlgorithmInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Complexity  string   `json:"complexity"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

var locations = []Location{
	{"Monas (Monumen Nasional)", "Iconic Jakarta landmark", models.Coordinate{Lat: -6.1751, Lng: 106.8650}},
	{"Bundaran HI (Hotel Indonesia)", "Famous roundabout in central Jakarta", models.Coordinate{Lat: -6.1944, Lng: 106.8229}},
	{"Kota Tua Jakarta", "Historic old town", models.Coordinate{Lat: -6.1352, Lng: 106.8133}},
	{"Ancol Dreamland", "Seaside amusement park", models.Coordinate{Lat: -6.1256, Lng: 106.8381}},
	{"Mall Kelapa Gading", "Large shopping mall in North Jakarta", models.Coordinate{Lat: -6.1574, Lng: 106.9083}},
	{"Bandara Soekarno-Hatta", "Jakarta international airport", models.Coordinate{Lat: -6.1256, Lng: 106.6558}},
}

var algorithms = map[string]AlgorithmInfo{
	"dijkstra": {
		Name:        "Dijkstra Algorithm",
		Description: "Classic shortest path algorithm",
		Complexity:  "O(V²) or O(E log V)",
		Pros:        []string{"Guarantees the shortest path", "Needs no heuristic", "Works on general graphs"},
		Cons:        []string{"Slower on large graphs", "Explores many nodes"},
	},
	"astar": {
		Name:        "A* Algorithm",
		Description: "Heuristic-guided shortest path search",
		Complexity:  "O(b^d) where b is the branching factor",
		Pros:        []string{"Faster than Dijkstra", "Uses a heuristic to prune the search"},
		Cons:        []string{"Needs a good heuristic", "Not optimal with an inadmissible heuristic"},
	},
	"custom": {
		Name:        "Custom Algorithm",
		Description: "Algorithm tuned for a specific case",
		Complexity:  "Depends on the implementation",
		Pros:        []string{"Can be optimized for specific cases", "Can combine several algorithms"},
		Cons:        []string{"Complex to implement", "Needs extensive testing"},
	},
}

// Locations returns the demo landmarks.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

// Algorithms returns descriptions of the supported algorithms keyed by name.
func Algorithms() map[string]AlgorithmInfo {
	out := make(map[string]AlgorithmInfo, len(algorithms))
	for name, info := range algorithms {
		out[name] = info
	}
	return out
}

// Markers picks count distinct landmarks in random order and labels them
// Start, Waypoint and End. count is clamped to the number of landmarks.
func Markers(count int, rng *rand.Rand) []models.Marker {
	count = max(0, min(count, len(locations)))

	picked := Locations()
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	markers := make([]models.Marker, 0, count)
	for idx, location := range picked[:count] {
		role := "Waypoint"
		switch idx {
		case 0:
			role = "Start"
		case count - 1:
			role = "End"
		}

		markers = append(markers, models.Marker{
			Coordinate: location.Coordinate,
			Label:      fmt.Sprintf("%s: %s", role, location.Name),
		})
	}

	return markers
}
