package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// SaveRoute stores a planned route and returns its generated ID.
func (r *Repository) SaveRoute(ctx context.Context, record models.RouteRecord) (int64, error) {
	query := `
		INSERT INTO route_history (
			algorithm, start_lat, start_lng, end_lat, end_lng,
			waypoints, distance, duration, nodes_visited, execution_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		record.Algorithm,
		record.Start.Lat, record.Start.Lng,
		record.End.Lat, record.End.Lng,
		record.Waypoints,
		record.Distance,
		record.Duration,
		record.NodesVisited,
		record.ExecutionTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert route history: %w", err)
	}

	r.log.DebugContext(ctx, "Route saved to history", "id", id, "algorithm", record.Algorithm)

	return id, nil
}

// ListRoutes returns the most recent routes, newest first.
func (r *Repository) ListRoutes(ctx context.Context, limit int) ([]models.RouteRecord, error) {
	query := `
		SELECT id, algorithm, start_lat, start_lng, end_lat, end_lng,
			waypoints, distance, duration, nodes_visited, execution_time, created_at
		FROM route_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query route history: %w", err)
	}
	defer rows.Close()

	records := []models.RouteRecord{}
	for rows.Next() {
		var rec models.RouteRecord
		if errScan := rows.Scan(
			&rec.ID, &rec.Algorithm,
			&rec.Start.Lat, &rec.Start.Lng, &rec.End.Lat, &rec.End.Lng,
			&rec.Waypoints, &rec.Distance, &rec.Duration, &rec.NodesVisited, &rec.ExecutionTime,
			&rec.CreatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan route history: %w", errScan)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return records, nil
}
