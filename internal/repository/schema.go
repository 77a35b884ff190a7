package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema matches the layout the dashboard historically wrote: the
// reading columns are exactly (timestamp, sensor, value, fault_type,
// severity), with a surrogate id to keep insertion order stable.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sensor_data (
		id         BIGSERIAL PRIMARY KEY,
		timestamp  TEXT NOT NULL,
		sensor     TEXT NOT NULL,
		value      DOUBLE PRECISION NOT NULL,
		fault_type TEXT NOT NULL,
		severity   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sensor_data_sensor ON sensor_data (sensor)`,
	`CREATE INDEX IF NOT EXISTS idx_sensor_data_timestamp ON sensor_data (timestamp)`,
	`CREATE TABLE IF NOT EXISTS uploads (
		id          UUID PRIMARY KEY,
		filename    TEXT NOT NULL,
		row_count   INTEGER NOT NULL,
		received_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
