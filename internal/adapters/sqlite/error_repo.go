package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/lotledger/internal/models"
)

// ErrorRepository implements secondary.ErrorSink with SQLite. Failed
// candidates keep their full stringified field set.
type ErrorRepository struct {
	db *sql.DB
}

// NewErrorRepository creates a new SQLite error repository.
func NewErrorRepository(db *sql.DB) *ErrorRepository {
	return &ErrorRepository{db: db}
}

// Insert stores a failed candidate in the error collection.
func (r *ErrorRepository) Insert(ctx context.Context, lot *models.Lot) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO lots_errors ("+lotColumns+") VALUES ("+lotPlaceholders+")",
		lotArgs(lot)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert error record: %w", err)
	}
	return nil
}

// Count returns the number of recorded error candidates.
func (r *ErrorRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lots_errors").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count error records: %w", err)
	}
	return n, nil
}

// List returns recorded error candidates, newest first.
func (r *ErrorRepository) List(ctx context.Context, limit int) ([]*models.Lot, error) {
	query := "SELECT id, " + lotColumns + " FROM lots_errors ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list error records: %w", err)
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan error record: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}
