package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Upload is the audit record of one ingested file.
type Upload struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	RowCount   int       `json:"row_count"`
	ReceivedAt time.Time `json:"received_at"`
}

// UploadRepository records ingest batches.
type UploadRepository struct {
	db *sql.DB
}

// NewUploadRepository returns repository.
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Insert records an upload inside the batch transaction.
func (r *UploadRepository) Insert(ctx context.Context, tx *sql.Tx, upload Upload) error {
	const query = `
		INSERT INTO uploads (id, filename, row_count, received_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, upload.ID, upload.Filename, upload.RowCount, upload.ReceivedAt)
	return err
}

// List returns uploads, newest first.
func (r *UploadRepository) List(ctx context.Context, limit int) ([]Upload, error) {
	query := "SELECT id, filename, row_count, received_at FROM uploads ORDER BY received_at DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.RowCount, &u.ReceivedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}
