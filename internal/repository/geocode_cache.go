package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/jackc/pgx/v5"
)

// FetchCachedPlaces returns the cached candidates for query in rank order.
// Entries older than maxAge are ignored. An empty result means a cache miss.
func (r *Repository) FetchCachedPlaces(ctx context.Context, query string, maxAge time.Duration) ([]models.Place, error) {
	sql := `
		SELECT place_id, display_name, lat, lng
		FROM geocode_cache
		WHERE query = $1 AND created_at >= $2
		ORDER BY rank ASC;
	`

	rows, err := r.db.Query(ctx, sql, query, time.Now().Add(-maxAge))
	if err != nil {
		return nil, fmt.Errorf("failed to query geocode cache: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var place models.Place
		if errScan := rows.Scan(
			&place.PlaceID, &place.DisplayName, &place.Coordinate.Lat, &place.Coordinate.Lng,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan cached place: %w", errScan)
		}
		places = append(places, place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Geocode cache lookup", "query", query, "hits", len(places))

	return places, nil
}

// StorePlaces replaces the cached candidates for query inside one transaction.
func (r *Repository) StorePlaces(ctx context.Context, query string, places []models.Place) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = replacePlaces(ctx, tx, query, places); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.ErrorContext(ctx, "Failed to rollback geocode cache update", "error", rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit geocode cache update: %w", err)
	}

	return nil
}

func replacePlaces(ctx context.Context, tx pgx.Tx, query string, places []models.Place) error {
	if _, err := tx.Exec(ctx, `DELETE FROM geocode_cache WHERE query = $1;`, query); err != nil {
		return fmt.Errorf("failed to clear geocode cache: %w", err)
	}

	insert := `
		INSERT INTO geocode_cache (query, rank, place_id, display_name, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for rank, place := range places {
		_, err := tx.Exec(ctx, insert,
			query, rank, place.PlaceID, place.DisplayName, place.Coordinate.Lat, place.Coordinate.Lng)
		if err != nil {
			return fmt.Errorf("failed to insert cached place %d: %w", rank, err)
		}
	}

	return nil
}
