package export_test

import (
	"bytes"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/export"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteRoute(t *testing.T) {
	start := models.Marker{Coordinate: models.Coordinate{Lat: -6.1751, Lng: 106.865}, Label: "Start"}
	end := models.Marker{Coordinate: models.Coordinate{Lat: -6.1944, Lng: 106.8229}, Label: "End"}
	summary := &models.RouteSummary{
		Algorithm:         "astar",
		Heuristic:         "euclidean",
		Markers:           []models.Marker{start, end},
		Path:              []models.Coordinate{start.Coordinate, end.Coordinate},
		PathPoints:        2,
		DistanceText:      "5.13 km",
		DurationText:      "N/A",
		NodesVisited:      2,
		ExecutionTimeText: "0.512 ms",
		PathLengthText:    "5.13 km",
		Legs: []models.Leg{{
			From: start, To: end, Distance: 5125.02, DistanceText: "5.13 km", EstimatedText: "10 min 15 sec",
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteRoute(&buf, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SummarySheet, export.LegsSheet, export.PathSheet}, f.GetSheetList())

	t.Run("summary sheet", func(t *testing.T) {
		rows, err := f.GetRows(export.SummarySheet)
		require.NoError(t, err)

		values := map[string]string{}
		for _, row := range rows {
			require.Len(t, row, 2)
			values[row[0]] = row[1]
		}
		assert.Equal(t, "astar", values["Algorithm"])
		assert.Equal(t, "5.13 km", values["Distance"])
		assert.Equal(t, "N/A", values["Duration"])
		assert.Equal(t, "0.512 ms", values["Execution Time"])
		assert.Equal(t, "2", values["Path Points"])
	})

	t.Run("legs sheet", func(t *testing.T) {
		rows, err := f.GetRows(export.LegsSheet)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "From", rows[0][1])
		assert.Equal(t, "Start", rows[1][1])
		assert.Equal(t, "End", rows[1][4])
		assert.Equal(t, "10 min 15 sec", rows[1][9])
	})

	t.Run("path sheet", func(t *testing.T) {
		rows, err := f.GetRows(export.PathSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, []string{"#", "Lat", "Lng"}, rows[0])
		assert.Equal(t, []string{"2", "-6.1944", "106.8229"}, rows[2])
	})
}

func TestWriteRoute_EmptyPath(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteRoute(&buf, &models.RouteSummary{Algorithm: "dijkstra"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.PathSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "only the header")
}
