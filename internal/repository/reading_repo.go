package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"faultwatch/internal/models"
)

// ReadingRepository persists classified sensor readings. The table is
// append-only from the pipeline's perspective; the only other write is
// the full-table reset.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository returns repository.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// ReadingFilter narrows FetchRange. Zero values mean "no constraint".
// Date-range filtering happens in the report layer on parsed
// timestamps; the stored timestamp is opaque text here.
type ReadingFilter struct {
	Sensor string
	Limit  int
}

// InsertBatch appends classified records inside the given transaction
// so a failing batch commits nothing.
func (r *ReadingRepository) InsertBatch(ctx context.Context, tx *sql.Tx, records []models.ClassifiedRecord) error {
	const query = `
		INSERT INTO sensor_data (timestamp, sensor, value, fault_type, severity)
		VALUES ($1, $2, $3, $4, $5)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Timestamp, rec.Sensor, rec.Value, string(rec.FaultType), string(rec.Severity)); err != nil {
			return fmt.Errorf("insert reading (%s, %s): %w", rec.Sensor, rec.Timestamp, err)
		}
	}
	return nil
}

// FetchAll returns every stored reading in insertion order.
func (r *ReadingRepository) FetchAll(ctx context.Context) ([]models.ClassifiedRecord, error) {
	return r.FetchRange(ctx, ReadingFilter{})
}

// FetchRange returns stored readings matching the filter, in insertion
// order.
func (r *ReadingRepository) FetchRange(ctx context.Context, filter ReadingFilter) ([]models.ClassifiedRecord, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Sensor != "" {
		args = append(args, filter.Sensor)
		conds = append(conds, fmt.Sprintf("sensor = $%d", len(args)))
	}

	query := "SELECT timestamp, sensor, value, fault_type, severity FROM sensor_data"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ClassifiedRecord
	for rows.Next() {
		var (
			rec       models.ClassifiedRecord
			faultType string
			severity  string
		)
		if err := rows.Scan(&rec.Timestamp, &rec.Sensor, &rec.Value, &faultType, &severity); err != nil {
			return nil, err
		}
		rec.FaultType = models.FaultType(faultType)
		rec.Severity = models.Severity(severity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Reset deletes every stored reading and upload record.
func (r *ReadingRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sensor_data"); err != nil {
		return fmt.Errorf("reset sensor_data: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM uploads"); err != nil {
		return fmt.Errorf("reset uploads: %w", err)
	}
	return tx.Commit()
}

// BeginTx starts a batch transaction.
func (r *ReadingRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}
