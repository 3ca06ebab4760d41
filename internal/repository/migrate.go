package repository

import (
	"context"
	"fmt"
)

const createGeocodeCacheTable = `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query        TEXT             NOT NULL,
		rank         INTEGER          NOT NULL,
		place_id     TEXT             NOT NULL DEFAULT '',
		display_name TEXT             NOT NULL DEFAULT '',
		lat          DOUBLE PRECISION NOT NULL,
		lng          DOUBLE PRECISION NOT NULL,
		created_at   TIMESTAMPTZ      NOT NULL DEFAULT now(),
		PRIMARY KEY (query, rank)
	);
`

const createRouteHistoryTable = `
	CREATE TABLE IF NOT EXISTS route_history (
		id             BIGSERIAL PRIMARY KEY,
		algorithm      TEXT             NOT NULL,
		start_lat      DOUBLE PRECISION NOT NULL,
		start_lng      DOUBLE PRECISION NOT NULL,
		end_lat        DOUBLE PRECISION NOT NULL,
		end_lng        DOUBLE PRECISION NOT NULL,
		waypoints      INTEGER          NOT NULL DEFAULT 0,
		distance       DOUBLE PRECISION NOT NULL,
		duration       DOUBLE PRECISION,
		nodes_visited  INTEGER          NOT NULL,
		execution_time DOUBLE PRECISION NOT NULL,
		created_at     TIMESTAMPTZ      NOT NULL DEFAULT now()
	);
`

// Migrate creates the tables the service needs when they do not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	tables := []struct{ name, stmt string }{
		{"geocode_cache", createGeocodeCacheTable},
		{"route_history", createRouteHistoryTable},
	}

	for _, table := range tables {
		if _, err := r.db.Exec(ctx, table.stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	r.log.InfoContext(ctx, "Database schema is up to date")
	return nil
}
