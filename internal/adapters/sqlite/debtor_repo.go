package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/lotledger/internal/models"
)

// DebtorRepository implements secondary.DebtorDirectory with SQLite. The
// directory is populated by the separate directory-building pipeline; Add
// exists for seeding and tests.
type DebtorRepository struct {
	db *sql.DB
}

// NewDebtorRepository creates a new SQLite debtor repository.
func NewDebtorRepository(db *sql.DB) *DebtorRepository {
	return &DebtorRepository{db: db}
}

// Exists reports whether a debtor with the given INN is known.
func (r *DebtorRepository) Exists(ctx context.Context, inn string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM debtors WHERE inn = ?", inn).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up debtor: %w", err)
	}
	return true, nil
}

// Add inserts or updates a directory entry.
func (r *DebtorRepository) Add(ctx context.Context, d *models.Debtor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO debtors (inn, name, source_link, case_number) VALUES (?, ?, ?, ?)
		ON CONFLICT(inn) DO UPDATE SET name = excluded.name,
			source_link = excluded.source_link, case_number = excluded.case_number`,
		d.INN, d.Name, d.SourceLink, d.CaseNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to add debtor: %w", err)
	}
	return nil
}

// List returns all directory entries.
func (r *DebtorRepository) List(ctx context.Context) ([]*models.Debtor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT inn, name, source_link, case_number FROM debtors ORDER BY inn")
	if err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}
	defer rows.Close()

	var debtors []*models.Debtor
	for rows.Next() {
		d := &models.Debtor{}
		if err := rows.Scan(&d.INN, &d.Name, &d.SourceLink, &d.CaseNumber); err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}
