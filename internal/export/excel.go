// Package export renders planned routes as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the route workbook.
const (
	SummarySheet = "Summary"
	LegsSheet    = "Legs"
	PathSheet    = "Path"
)

// WriteRoute writes summary as an xlsx workbook to w.
func WriteRoute(w io.Writer, summary *models.RouteSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}

	if err := writeSummary(f, summary); err != nil {
		return err
	}

	legs := make([][]any, 0, len(summary.Legs))
	for i, leg := range summary.Legs {
		legs = append(legs, []any{
			i + 1, leg.From.Label, leg.From.Lat, leg.From.Lng,
			leg.To.Label, leg.To.Lat, leg.To.Lng,
			leg.Distance, leg.DistanceText, leg.EstimatedText,
		})
	}
	if err := writeSheet(f, LegsSheet, []any{
		"#", "From", "From Lat", "From Lng", "To", "To Lat", "To Lng",
		"Distance (m)", "Distance", "Estimated Duration",
	}, legs); err != nil {
		return err
	}

	points := make([][]any, 0, len(summary.Path))
	for i, point := range summary.Path {
		points = append(points, []any{i + 1, point.Lat, point.Lng})
	}
	if err := writeSheet(f, PathSheet, []any{"#", "Lat", "Lng"}, points); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, summary *models.RouteSummary) error {
	rows := [][]any{
		{"Algorithm", summary.Algorithm},
		{"Heuristic", summary.Heuristic},
		{"Markers", len(summary.Markers)},
		{"Distance", summary.DistanceText},
		{"Duration", summary.DurationText},
		{"Nodes Visited", summary.NodesVisited},
		{"Execution Time", summary.ExecutionTimeText},
		{"Path Points", summary.PathPoints},
		{"Path Length", summary.PathLengthText},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	return nil
}

// writeSheet streams a header and rows into a new sheet.
func writeSheet(f *excelize.File, name string, header []any, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", name, err)
	}

	if err = sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, errCell := excelize.CoordinatesToCellName(1, i+2)
		if errCell != nil {
			return errCell
		}
		if err = sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+2, err)
		}
	}

	return sw.Flush()
}
