package demo_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/demo"
	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	locations := demo.Locations()

	require.Len(t, locations, 6)
	assert.Equal(t, "Monas (Monumen Nasional)", locations[0].Name)
	for _, location := range locations {
		require.NoError(t, geometrics.Validate(location.Coordinate), location.Name)
	}

	locations[0].Name = "changed"
	assert.NotEqual(t, "changed", demo.Locations()[0].Name, "callers get a copy")
}

func TestAlgorithms(t *testing.T) {
	algorithms := demo.Algorithms()

	assert.Len(t, algorithms, 3)
	for _, name := range []string{"dijkstra", "astar", "custom"} {
		assert.Contains(t, algorithms, name)
	}
}

func TestMarkers(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("labels", func(t *testing.T) {
		markers := demo.Markers(4, rng)

		require.Len(t, markers, 4)
		assert.True(t, strings.HasPrefix(markers[0].Label, "Start: "))
		assert.True(t, strings.HasPrefix(markers[1].Label, "Waypoint: "))
		assert.True(t, strings.HasPrefix(markers[2].Label, "Waypoint: "))
		assert.True(t, strings.HasPrefix(markers[3].Label, "End: "))
	})

	t.Run("distinct landmarks", func(t *testing.T) {
		markers := demo.Markers(6, rng)

		seen := map[string]bool{}
		for _, m := range markers {
			name := m.Label[strings.Index(m.Label, ": ")+2:]
			assert.False(t, seen[name], "duplicate landmark %s", name)
			seen[name] = true
		}
		assert.Len(t, seen, 6)
	})

	t.Run("count is clamped", func(t *testing.T) {
		assert.Len(t, demo.Markers(10, rng), 6)
		assert.Empty(t, demo.Markers(-1, rng))
	})

	t.Run("two markers", func(t *testing.T) {
		markers := demo.Markers(2, rng)

		require.Len(t, markers, 2)
		assert.True(t, strings.HasPrefix(markers[0].Label, "Start: "))
		assert.True(t, strings.HasPrefix(markers[1].Label, "End: "))
	})
}
